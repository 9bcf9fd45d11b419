package model

import "time"

// PostLike 点赞；(post_id, user_id) 唯一，重复点赞不产生新行
type PostLike struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	PostID    uint      `json:"-" gorm:"uniqueIndex:ux_like_pair;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:ux_like_pair;index;not null"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string { return "post_likes" }
