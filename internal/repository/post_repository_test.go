package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/testutil"
)

func TestPostRepository_FindByAuthorsAndType(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, 3)

	mk := func(author uint, typ model.PostType) uint {
		id, err := repo.Upsert(ctx, &model.Post{Text: "t", AuthorID: author, Type: typ})
		require.NoError(t, err)
		return id
	}
	p1 := mk(users[0].ID, model.PostTypeTop)
	mk(users[0].ID, model.PostTypeReply)
	p3 := mk(users[1].ID, model.PostTypeTop)
	mk(users[2].ID, model.PostTypeTop)

	posts, err := repo.FindByAuthorsAndType(ctx, []uint{users[1].ID, users[0].ID}, model.PostTypeTop)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, p1, posts[0].ID)
	assert.Equal(t, p3, posts[1].ID)
	assert.NotNil(t, posts[0].Author)

	empty, err := repo.FindByAuthorsAndType(ctx, nil, model.PostTypeTop)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	byAuthor, err := repo.FindAllByAuthorAndType(ctx, users[0].ID, model.PostTypeReply)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 1)
}

func TestPostRepository_LikesAreASet(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, 2)

	id, err := repo.Upsert(ctx, &model.Post{
		Text:     "t",
		AuthorID: users[0].ID,
		Type:     model.PostTypeTop,
		Likes:    []model.PostLike{{UserID: users[1].ID}, {UserID: users[1].ID}},
	})
	require.NoError(t, err)

	require.NoError(t, repo.AddLike(ctx, id, users[1].ID))
	require.NoError(t, repo.AddLike(ctx, id, users[0].ID))

	p, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, p.Likes, 2)
	assert.Equal(t, users[1].ID, p.Likes[0].UserID)
	assert.Equal(t, users[0].ID, p.Likes[1].UserID)
	require.NotNil(t, p.Likes[0].User)

	require.NoError(t, repo.RemoveLike(ctx, id, users[1].ID))
	require.NoError(t, repo.RemoveLike(ctx, id, users[1].ID))
	p, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, p.Likes, 1)
}

func TestPostRepository_AttachMissingComment(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, 1)

	parent, err := repo.Upsert(ctx, &model.Post{Text: "t", AuthorID: users[0].ID, Type: model.PostTypeTop})
	require.NoError(t, err)

	err = repo.AttachComment(ctx, parent, 404)
	assert.ErrorIs(t, err, ErrCommentMissing)
}

func TestUserRepository_SaveExistingKeepsCreatedAt(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &model.User{Username: "dave", Email: "dave@example.com", Password: "x"}
	require.NoError(t, repo.Save(ctx, u))
	created := u.CreatedAt

	again := &model.User{ID: u.ID, Username: "dave2", Email: "dave@example.com", Password: "y"}
	require.NoError(t, repo.Save(ctx, again))
	assert.True(t, created.Equal(again.CreatedAt), "created_at %v -> %v", created, again.CreatedAt)
	assert.Equal(t, "dave2", again.Username)

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestPostRepository_CreateCommentNeedsParent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, 1)

	_, err := repo.CreateComment(ctx, 404, &model.Post{Text: "c", AuthorID: users[0].ID, Type: model.PostTypeReply})
	assert.ErrorIs(t, err, ErrParentMissing)

	var cnt int64
	require.NoError(t, db.Model(&model.Post{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestUserRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &model.User{Username: "carol", Email: "carol@example.com", Password: "x"}
	require.NoError(t, repo.Save(ctx, u))
	require.NotZero(t, u.ID)

	dup := &model.User{Username: "carol", Email: "other@example.com", Password: "x"}
	err := repo.Save(ctx, dup)
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	got, err := repo.FindByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	missing, err := repo.FindByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, err := repo.FindByIDs(ctx, []uint{u.ID, 999})
	require.NoError(t, err)
	require.Len(t, users, 1)

	require.NoError(t, repo.UpdateColumn(ctx, u.ID, "image_url", "me.png"))
	got, err = repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "me.png", got.ImageURL)
}
