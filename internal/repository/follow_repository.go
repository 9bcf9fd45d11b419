package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/social-feed/internal/model"
)

// FollowRepository 关注边表；关注列表与粉丝列表都从同一张表的两个方向查询
type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID uint) error
	Delete(ctx context.Context, followerID, followeeID uint) error
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
	ListFolloweeIDs(ctx context.Context, followerID uint) ([]uint, error)
	ListFollowerIDs(ctx context.Context, followeeID uint) ([]uint, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Create(ctx context.Context, followerID, followeeID uint) error {
	f := &model.Follow{FollowerID: followerID, FolloweeID: followeeID}
	// 幂等：重复关注不报错
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error
	return errors.Wrapf(err, "create follow %d->%d", followerID, followeeID)
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.Follow{}).Error
	return errors.Wrapf(err, "delete follow %d->%d", followerID, followeeID)
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&cnt).Error; err != nil {
		return false, errors.Wrapf(err, "count follow %d->%d", followerID, followeeID)
	}
	return cnt > 0, nil
}

func (r *followRepository) ListFolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Order("id ASC").
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list followees of %d", followerID)
	}
	return ids, nil
}

func (r *followRepository) ListFollowerIDs(ctx context.Context, followeeID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("followee_id = ?", followeeID).
		Order("id ASC").
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list followers of %d", followeeID)
	}
	return ids, nil
}
