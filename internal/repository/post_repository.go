package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/social-feed/internal/model"
)

var (
	// ErrCommentMissing 评论对应的帖子行不存在
	ErrCommentMissing = errors.New("comment post does not exist")
	// ErrParentMissing 父帖子行不存在
	ErrParentMissing = errors.New("parent post does not exist")
)

// PostRepository 帖子仓储。涉及多行的写操作（评论挂载/摘除、级联删除、upsert 替换列表）都在单个事务内完成。
type PostRepository interface {
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	FindAllByType(ctx context.Context, t model.PostType) ([]*model.Post, error)
	FindAllByAuthorAndType(ctx context.Context, authorID uint, t model.PostType) ([]*model.Post, error)
	FindByAuthorsAndType(ctx context.Context, authorIDs []uint, t model.PostType) ([]*model.Post, error)
	Upsert(ctx context.Context, post *model.Post) (uint, error)
	DeleteByID(ctx context.Context, id uint) error
	AttachComment(ctx context.Context, parentID, commentID uint) error
	CreateComment(ctx context.Context, parentID uint, comment *model.Post) (uint, error)
	DeleteComment(ctx context.Context, parentID, commentID uint) error
	AddLike(ctx context.Context, postID, userID uint) error
	RemoveLike(ctx context.Context, postID, userID uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

// withGraph 预加载作者、一层评论（按 id 升序）和点赞
func withGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("posts.id ASC") }).
		Preload("Comments.Author").
		Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Order("post_likes.id ASC") }).
		Preload("Likes.User")
}

func (r *postRepository) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]*model.Post, error) {
	posts := []*model.Post{}
	err := withGraph(r.db.WithContext(ctx)).Scopes(scope).Order("posts.id ASC").Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return posts, nil
}

func (r *postRepository) FindAll(ctx context.Context) ([]*model.Post, error) {
	return r.find(ctx, "find posts", func(db *gorm.DB) *gorm.DB { return db })
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var p model.Post
	err := withGraph(r.db.WithContext(ctx)).Where("posts.id = ?", id).First(&p).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find post %d", id)
	}
	return &p, nil
}

func (r *postRepository) FindAllByType(ctx context.Context, t model.PostType) ([]*model.Post, error) {
	return r.find(ctx, "find posts by type", func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.type = ?", t)
	})
}

func (r *postRepository) FindAllByAuthorAndType(ctx context.Context, authorID uint, t model.PostType) ([]*model.Post, error) {
	return r.find(ctx, "find posts by author and type", func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.author_id = ? AND posts.type = ?", authorID, t)
	})
}

func (r *postRepository) FindByAuthorsAndType(ctx context.Context, authorIDs []uint, t model.PostType) ([]*model.Post, error) {
	if len(authorIDs) == 0 {
		return []*model.Post{}, nil
	}
	return r.find(ctx, "find posts by authors and type", func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.author_id IN ? AND posts.type = ?", authorIDs, t)
	})
}

// Upsert 已存在则覆盖标量字段、评论列表与点赞集合；不存在（含 ID 未命中）则以新 ID 插入。
// 列表中未持久化（ID 为 0）的评论会被忽略。
func (r *postRepository) Upsert(ctx context.Context, post *model.Post) (uint, error) {
	var id uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists := false
		if post.ID != 0 {
			var cnt int64
			if err := tx.Model(&model.Post{}).Where("id = ?", post.ID).Count(&cnt).Error; err != nil {
				return err
			}
			exists = cnt > 0
		}

		if exists {
			id = post.ID
			if err := tx.Model(&model.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
				"text":      post.Text,
				"image_url": post.ImageURL,
				"author_id": post.AuthorID,
				"type":      post.Type,
				"parent_id": post.ParentID,
			}).Error; err != nil {
				return err
			}
		} else {
			row := &model.Post{
				Text:     post.Text,
				ImageURL: post.ImageURL,
				AuthorID: post.AuthorID,
				Type:     post.Type,
				ParentID: post.ParentID,
			}
			if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
				return err
			}
			id = row.ID
		}

		if err := replaceComments(tx, id, post.Comments); err != nil {
			return err
		}
		return replaceLikes(tx, id, post.Likes)
	})
	if err != nil {
		return 0, errors.Wrap(err, "upsert post")
	}
	return id, nil
}

func replaceComments(tx *gorm.DB, parentID uint, comments []model.Post) error {
	ids := make([]uint, 0, len(comments))
	for i := range comments {
		if c := comments[i].ID; c != 0 && c != parentID {
			ids = append(ids, c)
		}
	}

	detach := tx.Model(&model.Post{}).Where("parent_id = ?", parentID)
	if len(ids) > 0 {
		detach = detach.Where("id NOT IN ?", ids)
	}
	if err := detach.Update("parent_id", nil).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return tx.Model(&model.Post{}).Where("id IN ?", ids).Update("parent_id", parentID).Error
}

func replaceLikes(tx *gorm.DB, postID uint, likes []model.PostLike) error {
	if err := tx.Where("post_id = ?", postID).Delete(&model.PostLike{}).Error; err != nil {
		return err
	}
	rows := make([]model.PostLike, 0, len(likes))
	seen := make(map[uint]struct{}, len(likes))
	for _, l := range likes {
		if l.UserID == 0 {
			continue
		}
		if _, ok := seen[l.UserID]; ok {
			continue
		}
		seen[l.UserID] = struct{}{}
		rows = append(rows, model.PostLike{PostID: postID, UserID: l.UserID})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

// DeleteByID 幂等；连同点赞与整棵评论子树一起删除
func (r *postRepository) DeleteByID(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteTree(tx, id)
	})
	return errors.Wrapf(err, "delete post %d", id)
}

func deleteTree(tx *gorm.DB, rootID uint) error {
	ids := []uint{rootID}
	seen := map[uint]struct{}{rootID: {}}
	frontier := []uint{rootID}
	for len(frontier) > 0 {
		var children []uint
		if err := tx.Model(&model.Post{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
			return err
		}
		frontier = frontier[:0]
		for _, c := range children {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			ids = append(ids, c)
			frontier = append(frontier, c)
		}
	}

	if err := tx.Where("post_id IN ?", ids).Delete(&model.PostLike{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&model.Post{}).Error
}

func (r *postRepository) AttachComment(ctx context.Context, parentID, commentID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&model.Post{}).Where("id = ?", commentID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return ErrCommentMissing
		}
		return tx.Model(&model.Post{}).Where("id = ?", commentID).Update("parent_id", parentID).Error
	})
	return errors.Wrapf(err, "attach comment %d to %d", commentID, parentID)
}

// CreateComment 插入评论行并挂到父帖子下，同一事务内完成
func (r *postRepository) CreateComment(ctx context.Context, parentID uint, comment *model.Post) (uint, error) {
	var id uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&model.Post{}).Where("id = ?", parentID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return ErrParentMissing
		}
		row := &model.Post{
			Text:     comment.Text,
			ImageURL: comment.ImageURL,
			AuthorID: comment.AuthorID,
			Type:     comment.Type,
			ParentID: &parentID,
		}
		if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
			return err
		}
		id = row.ID
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "create comment under %d", parentID)
	}
	return id, nil
}

// DeleteComment 先从父帖子摘除（不属于该父帖子时为空操作），再删除评论行及其子树
func (r *postRepository) DeleteComment(ctx context.Context, parentID, commentID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).
			Where("id = ? AND parent_id = ?", commentID, parentID).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		return deleteTree(tx, commentID)
	})
	return errors.Wrapf(err, "delete comment %d of %d", commentID, parentID)
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID uint) error {
	like := &model.PostLike{PostID: postID, UserID: userID}
	// 幂等：重复点赞不报错
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(like).Error
	return errors.Wrapf(err, "like post %d by %d", postID, userID)
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.PostLike{}).Error
	return errors.Wrapf(err, "unlike post %d by %d", postID, userID)
}
