package service

import (
	"context"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
)

// RelationshipService 关系链服务；关注边只写一行，关注/粉丝两个方向都由 follows 表派生
type RelationshipService interface {
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	FollowSet(ctx context.Context, userID uint) ([]uint, error)
	ListFollowing(ctx context.Context, userID uint) ([]*model.User, error)
	ListFollowers(ctx context.Context, userID uint) ([]*model.User, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewRelationshipService(followRepo repository.FollowRepository, userRepo repository.UserRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo, userRepo: userRepo}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return ErrFollowSelf
	}
	return s.followRepo.Create(ctx, followerID, followeeID)
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.followRepo.Delete(ctx, followerID, followeeID)
}

func (s *relationshipService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followeeID)
}

// FollowSet 用户关注的人的 id，按关注先后排序
func (s *relationshipService) FollowSet(ctx context.Context, userID uint) ([]uint, error) {
	return s.followRepo.ListFolloweeIDs(ctx, userID)
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID uint) ([]*model.User, error) {
	ids, err := s.followRepo.ListFolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindByIDs(ctx, ids)
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID uint) ([]*model.User, error) {
	ids, err := s.followRepo.ListFollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindByIDs(ctx, ids)
}
