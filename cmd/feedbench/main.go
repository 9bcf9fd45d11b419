package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/internal/lock"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/database"
)

func must[T any](v T, err error) T {
	check(err)
	return v
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

// seed 创建一个读者、authors 个被关注作者，每个作者 posts 条 Top 与等量 Reply。
// 任一步写入失败都返回错误，避免在空 feed 上计时。
func seed(ctx context.Context, db *gorm.DB, followRepo repository.FollowRepository, authors, posts int) (*model.User, error) {
	id := uuid.New().String()[:8]
	reader := &model.User{Username: "reader" + id, Email: "reader" + id + "@example.com", Password: "p"}
	if err := db.WithContext(ctx).Create(reader).Error; err != nil {
		return nil, fmt.Errorf("create reader: %w", err)
	}

	users := make([]model.User, authors)
	for i := range users {
		aid := uuid.New().String()[:8]
		users[i] = model.User{Username: "a" + aid, Email: aid + "@example.com", Password: "p"}
	}
	if err := db.WithContext(ctx).CreateInBatches(&users, 1000).Error; err != nil {
		return nil, fmt.Errorf("create authors: %w", err)
	}

	rows := make([]model.Post, 0, authors*posts*2)
	for i := range users {
		if err := followRepo.Create(ctx, reader.ID, users[i].ID); err != nil {
			return nil, err
		}
		for j := 0; j < posts; j++ {
			rows = append(rows,
				model.Post{Text: fmt.Sprintf("top %d", j), AuthorID: users[i].ID, Type: model.PostTypeTop},
				model.Post{Text: fmt.Sprintf("reply %d", j), AuthorID: users[i].ID, Type: model.PostTypeReply},
			)
		}
	}
	if len(rows) > 0 {
		if err := db.WithContext(ctx).CreateInBatches(&rows, 1000).Error; err != nil {
			return nil, fmt.Errorf("create posts: %w", err)
		}
	}
	return reader, nil
}

// 拉模式 feed 的读延迟：一个读者关注 AUTHORS 个作者，每个作者 POSTS 条 Top 帖子
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)

	AUTHORS := envInt("AUTHORS", 200)
	POSTS := envInt("POSTS", 20)
	READS := envInt("READS", 100)

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postSvc := service.NewPostService(repository.NewPostRepository(db))
	relSvc := service.NewRelationshipService(followRepo, userRepo)
	userSvc := service.NewUserService(userRepo, relSvc, postSvc, lock.NewLocalLocker())
	ctx := context.Background()

	reader := must(seed(ctx, db, followRepo, AUTHORS, POSTS))

	reads := make([]time.Duration, 0, READS)
	var size int
	for i := 0; i < READS; i++ {
		st := time.Now()
		feed, err := userSvc.GetFeedForUser(ctx, reader)
		check(err)
		reads = append(reads, time.Since(st))
		size = len(feed.Posts)
	}

	var sum time.Duration
	for _, d := range reads {
		sum += d
	}
	fmt.Printf("AUTHORS=%d POSTS=%d READS=%d\n", AUTHORS, POSTS, READS)
	fmt.Printf("Feed read: size=%d avg=%v p50=%v p95=%v p99=%v\n", size, sum/time.Duration(len(reads)), pct(reads, 0.50), pct(reads, 0.95), pct(reads, 0.99))
}
