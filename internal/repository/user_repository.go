package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

// UserRepository 用户仓储；查询未命中返回 (nil, nil)
type UserRepository interface {
	Save(ctx context.Context, user *model.User) error
	UpdateColumn(ctx context.Context, id uint, column string, value interface{}) error
	FindAll(ctx context.Context) ([]*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

// Save ID 为 0 或未命中时插入；已存在时覆盖可编辑列，created_at 保持不变
func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists := false
		if user.ID != 0 {
			var cnt int64
			if err := tx.Model(&model.User{}).Where("id = ?", user.ID).Count(&cnt).Error; err != nil {
				return err
			}
			exists = cnt > 0
		}
		if !exists {
			return tx.Create(user).Error
		}
		if err := tx.Model(&model.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"username":   user.Username,
			"email":      user.Email,
			"password":   user.Password,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"image_url":  user.ImageURL,
		}).Error; err != nil {
			return err
		}
		return tx.First(user, user.ID).Error
	})
	return errors.Wrap(err, "save user")
}

func (r *userRepository) UpdateColumn(ctx context.Context, id uint, column string, value interface{}) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update(column, value).Error
	return errors.Wrapf(err, "update user %d %s", id, column)
}

func (r *userRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	users := []*model.User{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "find users")
	}
	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return r.first(ctx, "find user by id", "id = ?", id)
}

// FindByIDs 按传入 ids 的顺序返回，缺失的 id 被跳过
func (r *userRepository) FindByIDs(ctx context.Context, ids []uint) ([]*model.User, error) {
	out := make([]*model.User, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []*model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "find users by ids")
	}
	byID := make(map[uint]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, "find user by username", "username = ?", username)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "find user by email", "email = ?", email)
}

func (r *userRepository) first(ctx context.Context, op string, query string, arg interface{}) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return &u, nil
}
