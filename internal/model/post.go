package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// PostType 帖子分类
type PostType string

const (
	PostTypeTop   PostType = "Top"
	PostTypeReply PostType = "Reply"
)

func (t PostType) Valid() bool {
	switch t {
	case PostTypeTop, PostTypeReply:
		return true
	}
	return false
}

// UnmarshalJSON null 或空串保持为空，由调用方按场景补默认值（发帖为 Top，评论为 Reply）
func (t *PostType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*t = ""
		return nil
	}
	v := PostType(s)
	if !v.Valid() {
		return fmt.Errorf("unknown post type %q", s)
	}
	*t = v
	return nil
}

// Post 帖子；评论也是 Post，通过 ParentID 挂到父帖子下
type Post struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Text      string     `json:"text" gorm:"type:text"`
	ImageURL  string     `json:"image_url" gorm:"type:text"`
	AuthorID  uint       `json:"author_id" gorm:"index:idx_post_author_type;not null"`
	Author    *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Type      PostType   `json:"post_type" gorm:"type:varchar(16);index:idx_post_author_type;not null;default:Top"`
	ParentID  *uint      `json:"parent_id,omitempty" gorm:"index"`
	Comments  []Post     `json:"comments" gorm:"foreignKey:ParentID"`
	Likes     []PostLike `json:"likes" gorm:"foreignKey:PostID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// HasComment 判断 commentID 是否为该帖子的直接评论
func (p *Post) HasComment(commentID uint) bool {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return true
		}
	}
	return false
}
