package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/social-feed/internal/model"
)

// FeedState 区分"有内容"、"空"、"未能计算"三种结果
type FeedState int

const (
	FeedNotComputed FeedState = iota
	FeedEmpty
	FeedFound
)

func (s FeedState) String() string {
	switch s {
	case FeedFound:
		return "found"
	case FeedEmpty:
		return "empty"
	default:
		return "not_computed"
	}
}

// Feed 用户时间线：关注的人发布的 Top 帖子，按创建顺序
type Feed struct {
	State FeedState
	Posts []*model.Post
}

// feedAssembler 只读聚合：关注集合 -> 帖子
type feedAssembler struct {
	rel   RelationshipService
	posts PostService
}

func (a *feedAssembler) assemble(ctx context.Context, userID uint) (Feed, error) {
	followSet, err := a.rel.FollowSet(ctx, userID)
	if err != nil {
		return Feed{State: FeedNotComputed}, fmt.Errorf("%w: follow set of user %d: %w", ErrFeedNotComputed, userID, err)
	}
	if len(followSet) == 0 {
		return Feed{State: FeedEmpty, Posts: []*model.Post{}}, nil
	}

	posts, err := a.posts.ListTopByAuthors(ctx, followSet)
	if err != nil {
		return Feed{State: FeedNotComputed}, fmt.Errorf("%w: posts of user %d's follow set: %w", ErrFeedNotComputed, userID, err)
	}
	if posts == nil {
		return Feed{State: FeedNotComputed}, fmt.Errorf("%w: store returned no result for user %d", ErrFeedNotComputed, userID)
	}
	if len(posts) == 0 {
		return Feed{State: FeedEmpty, Posts: posts}, nil
	}
	return Feed{State: FeedFound, Posts: posts}, nil
}
