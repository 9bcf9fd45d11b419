package model

import "time"

// User 用户；关注关系不在此冗余，统一存于 follows 边表
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(64);uniqueIndex:ux_users_username;not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex:ux_users_email;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	FirstName string    `json:"first_name" gorm:"type:varchar(64)"`
	LastName  string    `json:"last_name" gorm:"type:varchar(64)"`
	ImageURL  string    `json:"image_url" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
