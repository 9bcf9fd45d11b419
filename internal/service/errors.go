package service

import "errors"

var (
	ErrFollowSelf          = errors.New("cannot follow self")
	ErrUsernameTaken       = errors.New("username is already being used")
	ErrEmailTaken          = errors.New("email is already being used")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrCommentNotPersisted = errors.New("comment must be saved before it is attached")
	ErrInvalidComment      = errors.New("a post cannot be its own comment")
	// ErrFeedNotComputed 聚合过程中存储层异常，区别于"未找到"
	ErrFeedNotComputed = errors.New("feed could not be computed")
)
