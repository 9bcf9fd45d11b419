package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/testutil"
)

func seedUsers(tb testing.TB, db *gorm.DB, n int) []model.User {
	tb.Helper()
	users := make([]model.User, n)
	for i := range users {
		name := fmt.Sprintf("u%05d", i)
		users[i] = model.User{Username: name, Email: name + "@example.com", Password: "p"}
	}
	if err := db.CreateInBatches(&users, 500).Error; err != nil {
		tb.Fatalf("seed users: %v", err)
	}
	return users
}

func BenchmarkFollowWrite(b *testing.B) {
	db := testutil.NewDB(b)
	followRepo := NewFollowRepository(db)
	ctx := context.Background()

	// 预创建部分用户
	users := seedUsers(b, db, 1000)

	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[rng.Intn(len(users))].ID
		to := users[rng.Intn(len(users))].ID
		if from == to { continue }
		_ = followRepo.Create(ctx, from, to)
	}
}

func BenchmarkQueryFollowersAndFollowing(b *testing.B) {
	db := testutil.NewDB(b)
	followRepo := NewFollowRepository(db)
	ctx := context.Background()

	// 构造：u0 有 N 个粉丝，同时 u0 也关注这 N 个用户；同一张边表两个方向查询
	const N = 2000
	users := seedUsers(b, db, N+1)
	u0 := users[0].ID
	for _, u := range users[1:] {
		_ = followRepo.Create(ctx, u.ID, u0)
		_ = followRepo.Create(ctx, u0, u.ID)
	}

	b.ResetTimer()
	b.Run("ListFollowerIDs", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = followRepo.ListFollowerIDs(ctx, u0)
		}
	})

	b.Run("ListFolloweeIDs", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = followRepo.ListFolloweeIDs(ctx, u0)
		}
	})
}
