package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/internal/lock"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/database"
	"github.com/d60-Lab/social-feed/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// 生成演示数据：USERS 个用户，每人关注 FOLLOWS 个随机用户、发 POSTS 条帖子并随机评论点赞
func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		panic(err)
	}
	defer logger.Sync()
	db := must(database.InitDB(cfg))
	defer database.Close(db)

	USERS := envInt("USERS", 50)
	FOLLOWS := envInt("FOLLOWS", 5)
	POSTS := envInt("POSTS", 3)

	userRepo := repository.NewUserRepository(db)
	postSvc := service.NewPostService(repository.NewPostRepository(db))
	relSvc := service.NewRelationshipService(repository.NewFollowRepository(db), userRepo)
	userSvc := service.NewUserService(userRepo, relSvc, postSvc, lock.NewLocalLocker())

	ctx := context.Background()
	users := make([]*model.User, 0, USERS)
	for i := 0; i < USERS; i++ {
		// 后缀避免与已有数据冲突
		suffix := uuid.New().String()[:8]
		u, err := userSvc.Register(ctx, service.RegisterInput{
			Username:  gofakeit.Username() + "_" + suffix,
			Email:     suffix + "_" + gofakeit.Email(),
			Password:  gofakeit.Password(true, true, true, false, false, 12),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
		})
		if err != nil {
			logger.Warn("seed user skipped", zap.Error(err))
			continue
		}
		users = append(users, u)
	}
	if len(users) < 2 {
		fmt.Println("not enough users seeded")
		return
	}

	follows := 0
	for _, u := range users {
		for j := 0; j < FOLLOWS; j++ {
			other := users[rand.Intn(len(users))]
			if other.ID == u.ID {
				continue
			}
			if err := userSvc.AddFollower(ctx, other, u); err != nil {
				logger.Warn("seed follow failed", zap.Error(err))
				continue
			}
			follows++
		}
	}

	var tops []*model.Post
	for _, u := range users {
		for j := 0; j < POSTS; j++ {
			p := must(postSvc.Upsert(ctx, &model.Post{
				Text:     gofakeit.Sentence(12),
				ImageURL: gofakeit.URL(),
				AuthorID: u.ID,
				Type:     model.PostTypeTop,
			}))
			tops = append(tops, p)
		}
	}

	comments, likes := 0, 0
	for _, p := range tops {
		commenter := users[rand.Intn(len(users))]
		if _, err := postSvc.CreateComment(ctx, p, &model.Post{Text: gofakeit.Sentence(6), AuthorID: commenter.ID}); err != nil {
			logger.Warn("seed comment failed", zap.Error(err))
		} else {
			comments++
		}
		liker := users[rand.Intn(len(users))]
		if _, err := postSvc.AddPostLike(ctx, p, liker); err != nil {
			logger.Warn("seed like failed", zap.Error(err))
		} else {
			likes++
		}
	}

	fmt.Printf("users=%d follows=%d posts=%d comments=%d likes=%d\n", len(users), follows, len(tops), comments, likes)
}
