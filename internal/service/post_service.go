package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
)

// PostService 帖子聚合：帖子、评论、点赞的唯一写入口。
// 查询未命中返回 (nil, nil)；调用方负责先把 id 解析为实体。
type PostService interface {
	ListAll(ctx context.Context) ([]*model.Post, error)
	Upsert(ctx context.Context, post *model.Post) (*model.Post, error)
	ListTop(ctx context.Context) ([]*model.Post, error)
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	DeleteByID(ctx context.Context, id uint) error
	AddComment(ctx context.Context, parent, comment *model.Post) (*model.Post, error)
	CreateComment(ctx context.Context, parent, comment *model.Post) (*model.Post, error)
	DeleteComment(ctx context.Context, parent, comment *model.Post) (*model.Post, error)
	AddPostLike(ctx context.Context, post *model.Post, liker *model.User) (*model.Post, error)
	RemovePostLike(ctx context.Context, post *model.Post, liker *model.User) (*model.Post, error)
	EditText(ctx context.Context, id uint, text string) (*model.Post, error)
	EditImage(ctx context.Context, id uint, imageURL string) (*model.Post, error)
	ListTopByAuthors(ctx context.Context, authorIDs []uint) ([]*model.Post, error)
	ListTopByAuthor(ctx context.Context, authorID uint) ([]*model.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) ListAll(ctx context.Context) ([]*model.Post, error) {
	return s.postRepo.FindAll(ctx)
}

func (s *postService) Upsert(ctx context.Context, post *model.Post) (*model.Post, error) {
	if post.Type == "" {
		post.Type = model.PostTypeTop
	}
	id, err := s.postRepo.Upsert(ctx, post)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, id)
}

func (s *postService) ListTop(ctx context.Context) ([]*model.Post, error) {
	return s.postRepo.FindAllByType(ctx, model.PostTypeTop)
}

func (s *postService) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	return s.postRepo.FindByID(ctx, id)
}

func (s *postService) DeleteByID(ctx context.Context, id uint) error {
	return s.postRepo.DeleteByID(ctx, id)
}

// AddComment 建立父子关系；comment 必须已持久化
func (s *postService) AddComment(ctx context.Context, parent, comment *model.Post) (*model.Post, error) {
	if comment.ID == 0 {
		return nil, ErrCommentNotPersisted
	}
	if comment.ID == parent.ID {
		return nil, ErrInvalidComment
	}
	if err := s.postRepo.AttachComment(ctx, parent.ID, comment.ID); err != nil {
		if errors.Is(err, repository.ErrCommentMissing) {
			return nil, ErrCommentNotPersisted
		}
		return nil, err
	}
	return s.reload(ctx, parent.ID)
}

// CreateComment 保存新评论并挂到 parent 下；类型缺省为 Reply。
// parent 已被删除时返回 (nil, nil)。
func (s *postService) CreateComment(ctx context.Context, parent, comment *model.Post) (*model.Post, error) {
	if comment.Type == "" {
		comment.Type = model.PostTypeReply
	}
	if _, err := s.postRepo.CreateComment(ctx, parent.ID, comment); err != nil {
		if errors.Is(err, repository.ErrParentMissing) {
			return nil, nil
		}
		return nil, err
	}
	return s.reload(ctx, parent.ID)
}

// DeleteComment comment 不属于 parent 时摘除为空操作，但评论行仍会被删除
func (s *postService) DeleteComment(ctx context.Context, parent, comment *model.Post) (*model.Post, error) {
	if err := s.postRepo.DeleteComment(ctx, parent.ID, comment.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, parent.ID)
}

// AddPostLike 点赞是集合语义，同一用户重复点赞只保留一条
func (s *postService) AddPostLike(ctx context.Context, post *model.Post, liker *model.User) (*model.Post, error) {
	if err := s.postRepo.AddLike(ctx, post.ID, liker.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, post.ID)
}

func (s *postService) RemovePostLike(ctx context.Context, post *model.Post, liker *model.User) (*model.Post, error) {
	if err := s.postRepo.RemoveLike(ctx, post.ID, liker.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, post.ID)
}

func (s *postService) EditText(ctx context.Context, id uint, text string) (*model.Post, error) {
	return s.edit(ctx, id, func(p *model.Post) { p.Text = text })
}

func (s *postService) EditImage(ctx context.Context, id uint, imageURL string) (*model.Post, error) {
	return s.edit(ctx, id, func(p *model.Post) { p.ImageURL = imageURL })
}

func (s *postService) edit(ctx context.Context, id uint, mutate func(*model.Post)) (*model.Post, error) {
	p, err := s.postRepo.FindByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	mutate(p)
	return s.Upsert(ctx, p)
}

func (s *postService) ListTopByAuthors(ctx context.Context, authorIDs []uint) ([]*model.Post, error) {
	return s.postRepo.FindByAuthorsAndType(ctx, authorIDs, model.PostTypeTop)
}

func (s *postService) ListTopByAuthor(ctx context.Context, authorID uint) ([]*model.Post, error) {
	return s.postRepo.FindAllByAuthorAndType(ctx, authorID, model.PostTypeTop)
}

// reload 写入后重新读取；此时仍查不到说明行被并发删除
func (s *postService) reload(ctx context.Context, id uint) (*model.Post, error) {
	p, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("post %d vanished after write", id)
	}
	return p, nil
}
