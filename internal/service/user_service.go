package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/social-feed/internal/lock"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/pkg/logger"
)

const uniquenessLockTTL = 5 * time.Second

// RegisterInput 注册参数
type RegisterInput struct {
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"max=64"`
	LastName  string `json:"last_name" binding:"max=64"`
	ImageURL  string `json:"image_url"`
}

// UserService 用户与社交关系。
// 用户名/邮箱唯一性采用"先查后写"，在 Locker 内执行；跨实例的剩余竞态窗口由唯一索引兜底。
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	Save(ctx context.Context, user *model.User) (*model.User, error)
	ListAll(ctx context.Context) ([]*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	EditPassword(ctx context.Context, id uint, password string) (*model.User, error)
	EditEmail(ctx context.Context, id uint, email string) (*model.User, error)
	EditUsername(ctx context.Context, id uint, username string) (*model.User, error)
	EditImage(ctx context.Context, id uint, imageURL string) (*model.User, error)
	AddFollower(ctx context.Context, followed, follower *model.User) error
	RemoveFollower(ctx context.Context, followed, follower *model.User) error
	ListFollowing(ctx context.Context, userID uint) ([]*model.User, error)
	ListFollowers(ctx context.Context, userID uint) ([]*model.User, error)
	GetFeedForUser(ctx context.Context, user *model.User) (Feed, error)
	GetAllPostsByUser(ctx context.Context, user *model.User) ([]*model.Post, error)
}

type userService struct {
	userRepo repository.UserRepository
	rel      RelationshipService
	posts    PostService
	locker   lock.Locker
	feed     *feedAssembler
}

func NewUserService(userRepo repository.UserRepository, rel RelationshipService, posts PostService, locker lock.Locker) UserService {
	return &userService{
		userRepo: userRepo,
		rel:      rel,
		posts:    posts,
		locker:   locker,
		feed:     &feedAssembler{rel: rel, posts: posts},
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	return s.Save(ctx, &model.User{
		Username:  strings.TrimSpace(in.Username),
		Email:     strings.TrimSpace(in.Email),
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		ImageURL:  in.ImageURL,
	})
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Save upsert：ID 为 0 或未命中时以新 ID 插入，否则整行覆盖
func (s *userService) Save(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID != 0 {
		existing, err := s.userRepo.FindByID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			user.ID = 0
		}
	}
	if err := s.hashPassword(user); err != nil {
		return nil, err
	}

	unlock, err := s.lockValues(ctx, user.Username, user.Email)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.ensureUnique(ctx, user.ID, user.Username, user.Email); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, s.translateDuplicate(ctx, user, err)
	}
	return user, nil
}

func (s *userService) ListAll(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.FindByEmail(ctx, email)
}

func (s *userService) EditPassword(ctx context.Context, id uint, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.editColumn(ctx, id, "password", string(hash))
}

func (s *userService) EditEmail(ctx context.Context, id uint, email string) (*model.User, error) {
	return s.editUnique(ctx, id, "email", strings.TrimSpace(email))
}

func (s *userService) EditUsername(ctx context.Context, id uint, username string) (*model.User, error) {
	return s.editUnique(ctx, id, "username", strings.TrimSpace(username))
}

func (s *userService) EditImage(ctx context.Context, id uint, imageURL string) (*model.User, error) {
	return s.editColumn(ctx, id, "image_url", imageURL)
}

func (s *userService) editUnique(ctx context.Context, id uint, column, value string) (*model.User, error) {
	release, err := s.locker.Acquire(ctx, "user:"+column+":"+strings.ToLower(value), uniquenessLockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	var holder *model.User
	if column == "email" {
		holder, err = s.userRepo.FindByEmail(ctx, value)
	} else {
		holder, err = s.userRepo.FindByUsername(ctx, value)
	}
	if err != nil {
		return nil, err
	}
	if holder != nil && holder.ID != id {
		return nil, takenErr(column)
	}

	u, err := s.editColumn(ctx, id, column, value)
	if repository.IsDuplicateKey(err) {
		return nil, takenErr(column)
	}
	return u, err
}

// editColumn 未找到用户时返回 (nil, nil)
func (s *userService) editColumn(ctx context.Context, id uint, column string, value interface{}) (*model.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	if err := s.userRepo.UpdateColumn(ctx, id, column, value); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, id)
}

// AddFollower follower 关注 followed；幂等
func (s *userService) AddFollower(ctx context.Context, followed, follower *model.User) error {
	if err := s.rel.Follow(ctx, follower.ID, followed.ID); err != nil {
		return err
	}
	logger.Debug("follow added", zap.Uint("followed", followed.ID), zap.Uint("follower", follower.ID))
	return nil
}

func (s *userService) RemoveFollower(ctx context.Context, followed, follower *model.User) error {
	if err := s.rel.Unfollow(ctx, follower.ID, followed.ID); err != nil {
		return err
	}
	logger.Debug("follow removed", zap.Uint("followed", followed.ID), zap.Uint("follower", follower.ID))
	return nil
}

func (s *userService) ListFollowing(ctx context.Context, userID uint) ([]*model.User, error) {
	return s.rel.ListFollowing(ctx, userID)
}

func (s *userService) ListFollowers(ctx context.Context, userID uint) ([]*model.User, error) {
	return s.rel.ListFollowers(ctx, userID)
}

func (s *userService) GetFeedForUser(ctx context.Context, user *model.User) (Feed, error) {
	feed, err := s.feed.assemble(ctx, user.ID)
	if err != nil {
		logger.Error("feed assembly failed", zap.Uint("user", user.ID), zap.Error(err))
	}
	return feed, err
}

// GetAllPostsByUser 只返回该用户的 Top 帖子，不含其回复
func (s *userService) GetAllPostsByUser(ctx context.Context, user *model.User) ([]*model.Post, error) {
	return s.posts.ListTopByAuthor(ctx, user.ID)
}

// hashPassword 已是 bcrypt 哈希的密码原样保留
func (s *userService) hashPassword(u *model.User) error {
	if _, err := bcrypt.Cost([]byte(u.Password)); err == nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (s *userService) lockValues(ctx context.Context, username, email string) (func(), error) {
	releaseName, err := s.locker.Acquire(ctx, "user:username:"+strings.ToLower(username), uniquenessLockTTL)
	if err != nil {
		return nil, err
	}
	releaseEmail, err := s.locker.Acquire(ctx, "user:email:"+strings.ToLower(email), uniquenessLockTTL)
	if err != nil {
		releaseName()
		return nil, err
	}
	return func() {
		releaseEmail()
		releaseName()
	}, nil
}

func (s *userService) ensureUnique(ctx context.Context, id uint, username, email string) error {
	byName, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if byName != nil && byName.ID != id {
		return ErrUsernameTaken
	}
	byEmail, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if byEmail != nil && byEmail.ID != id {
		return ErrEmailTaken
	}
	return nil
}

// translateDuplicate 唯一索引冲突时判断是哪一列
func (s *userService) translateDuplicate(ctx context.Context, u *model.User, err error) error {
	if !repository.IsDuplicateKey(err) {
		return err
	}
	if taken := s.ensureUnique(ctx, u.ID, u.Username, u.Email); taken != nil {
		return taken
	}
	return err
}

func takenErr(column string) error {
	if column == "email" {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}
