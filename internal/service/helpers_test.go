package service

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-feed/internal/lock"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/internal/testutil"
)

type testEnv struct {
	posts PostService
	users UserService
	rel   RelationshipService
}

func newTestEnv(t *testing.T) *testEnv {
	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository(db)
	posts := NewPostService(repository.NewPostRepository(db))
	rel := NewRelationshipService(repository.NewFollowRepository(db), userRepo)
	return &testEnv{
		posts: posts,
		rel:   rel,
		users: NewUserService(userRepo, rel, posts, lock.NewLocalLocker()),
	}
}

func (e *testEnv) user(t *testing.T) *model.User {
	t.Helper()
	u, err := e.users.Save(context.Background(), &model.User{
		Username:  gofakeit.Username() + gofakeit.DigitN(6),
		Email:     gofakeit.DigitN(6) + gofakeit.Email(),
		Password:  gofakeit.Password(true, true, true, false, false, 12),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) post(t *testing.T, author *model.User, typ model.PostType) *model.Post {
	t.Helper()
	p, err := e.posts.Upsert(context.Background(), &model.Post{
		Text:     gofakeit.Sentence(8),
		AuthorID: author.ID,
		Type:     typ,
	})
	require.NoError(t, err)
	return p
}

func postIDs(posts []*model.Post) []uint {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}
