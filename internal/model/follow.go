package model

import (
	"time"
)

// Follow 关注关系（Follower 关注 Followee），单向边，两个方向都从这张表查询
type Follow struct {
	ID         uint `gorm:"primaryKey"`
	FollowerID uint `gorm:"index:idx_follow_follower;uniqueIndex:ux_follow_pair;not null"`
	FolloweeID uint `gorm:"index:idx_follow_followee;uniqueIndex:ux_follow_pair;not null"`
	// ux_follow_pair = (follower_id, followee_id)，避免重复关注
	CreatedAt time.Time
}

func (Follow) TableName() string { return "follows" }
