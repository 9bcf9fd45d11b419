package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-feed/internal/model"
)

func TestUpsertThenFindByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)

	saved, err := env.posts.Upsert(ctx, &model.Post{Text: "hello", ImageURL: "img.png", AuthorID: author.ID, Type: model.PostTypeTop})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	found, err := env.posts.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, saved.ID, found.ID)
	assert.Equal(t, "hello", found.Text)
	assert.Equal(t, "img.png", found.ImageURL)
	assert.Equal(t, author.ID, found.AuthorID)
	assert.Equal(t, model.PostTypeTop, found.Type)
	require.NotNil(t, found.Author)
	assert.Equal(t, author.Username, found.Author.Username)
	assert.Empty(t, found.Comments)
	assert.Empty(t, found.Likes)
}

func TestUpsertDefaultsToTop(t *testing.T) {
	env := newTestEnv(t)
	author := env.user(t)

	p, err := env.posts.Upsert(context.Background(), &model.Post{Text: "x", AuthorID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, model.PostTypeTop, p.Type)
}

func TestUpsertOverwritesExisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	liker := env.user(t)
	p := env.post(t, author, model.PostTypeTop)

	_, err := env.posts.AddPostLike(ctx, p, liker)
	require.NoError(t, err)

	updated, err := env.posts.Upsert(ctx, &model.Post{ID: p.ID, Text: "edited", AuthorID: author.ID, Type: model.PostTypeReply})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, model.PostTypeReply, updated.Type)
	assert.Empty(t, updated.Likes, "full replace drops likes not present in the payload")

	all, err := env.posts.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertUnknownIDInsertsWithNewID(t *testing.T) {
	env := newTestEnv(t)
	author := env.user(t)

	p, err := env.posts.Upsert(context.Background(), &model.Post{ID: 999, Text: "x", AuthorID: author.ID})
	require.NoError(t, err)
	assert.NotEqual(t, uint(999), p.ID)
}

func TestUpsertReplacesComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	parent := env.post(t, author, model.PostTypeTop)
	c1 := env.post(t, author, model.PostTypeReply)
	c2 := env.post(t, author, model.PostTypeReply)

	parent, err := env.posts.AddComment(ctx, parent, c1)
	require.NoError(t, err)

	parent.Comments = []model.Post{*c2}
	parent, err = env.posts.Upsert(ctx, parent)
	require.NoError(t, err)
	require.Len(t, parent.Comments, 1)
	assert.Equal(t, c2.ID, parent.Comments[0].ID)

	detached, err := env.posts.FindByID(ctx, c1.ID)
	require.NoError(t, err)
	require.NotNil(t, detached, "detached comments stay as standalone posts")
	assert.Nil(t, detached.ParentID)
}

func TestListTopExcludesReplies(t *testing.T) {
	env := newTestEnv(t)
	author := env.user(t)
	top1 := env.post(t, author, model.PostTypeTop)
	env.post(t, author, model.PostTypeReply)
	top2 := env.post(t, author, model.PostTypeTop)

	top, err := env.posts.ListTop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint{top1.ID, top2.ID}, postIDs(top))
}

func TestListAllEmpty(t *testing.T) {
	env := newTestEnv(t)
	all, err := env.posts.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestFindByIDAbsent(t *testing.T) {
	env := newTestEnv(t)
	p, err := env.posts.FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDeleteByIDIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	p := env.post(t, author, model.PostTypeTop)

	require.NoError(t, env.posts.DeleteByID(ctx, p.ID))
	require.NoError(t, env.posts.DeleteByID(ctx, p.ID))
	require.NoError(t, env.posts.DeleteByID(ctx, 12345))

	found, err := env.posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDeleteByIDCascadesToCommentsAndLikes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	parent := env.post(t, author, model.PostTypeTop)
	comment := env.post(t, author, model.PostTypeReply)
	nested := env.post(t, author, model.PostTypeReply)

	_, err := env.posts.AddComment(ctx, parent, comment)
	require.NoError(t, err)
	_, err = env.posts.AddComment(ctx, comment, nested)
	require.NoError(t, err)
	_, err = env.posts.AddPostLike(ctx, comment, author)
	require.NoError(t, err)

	require.NoError(t, env.posts.DeleteByID(ctx, parent.ID))

	all, err := env.posts.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAddThenDeleteComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	parent := env.post(t, author, model.PostTypeTop)
	comment := env.post(t, author, model.PostTypeReply)

	parent, err := env.posts.AddComment(ctx, parent, comment)
	require.NoError(t, err)
	require.Len(t, parent.Comments, 1)
	assert.True(t, parent.HasComment(comment.ID))

	parent, err = env.posts.DeleteComment(ctx, parent, comment)
	require.NoError(t, err)
	assert.False(t, parent.HasComment(comment.ID))

	gone, err := env.posts.FindByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCreateCommentDefaultsToReply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	parent := env.post(t, author, model.PostTypeTop)

	parent, err := env.posts.CreateComment(ctx, parent, &model.Post{Text: "first!", AuthorID: author.ID})
	require.NoError(t, err)
	require.Len(t, parent.Comments, 1)
	assert.Equal(t, model.PostTypeReply, parent.Comments[0].Type)
	require.NotNil(t, parent.Comments[0].ParentID)
	assert.Equal(t, parent.ID, *parent.Comments[0].ParentID)

	own, err := env.users.GetAllPostsByUser(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, []uint{parent.ID}, postIDs(own))
}

func TestCreateCommentUnderDeletedParentLeavesNoRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	parent := env.post(t, author, model.PostTypeTop)
	require.NoError(t, env.posts.DeleteByID(ctx, parent.ID))

	got, err := env.posts.CreateComment(ctx, parent, &model.Post{Text: "late", AuthorID: author.ID})
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := env.posts.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCommentsKeepCreationOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	parent := env.post(t, author, model.PostTypeTop)
	first := env.post(t, author, model.PostTypeReply)
	second := env.post(t, author, model.PostTypeReply)

	_, err := env.posts.AddComment(ctx, parent, second)
	require.NoError(t, err)
	parent, err = env.posts.AddComment(ctx, parent, first)
	require.NoError(t, err)

	require.Len(t, parent.Comments, 2)
	assert.Equal(t, first.ID, parent.Comments[0].ID)
	assert.Equal(t, second.ID, parent.Comments[1].ID)
}

func TestDeleteCommentNotOwnedStillDeletesRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	parent := env.post(t, author, model.PostTypeTop)
	stranger := env.post(t, author, model.PostTypeReply)

	parent, err := env.posts.DeleteComment(ctx, parent, stranger)
	require.NoError(t, err)
	assert.Empty(t, parent.Comments)

	gone, err := env.posts.FindByID(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAddCommentRequiresPersistedComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	parent := env.post(t, author, model.PostTypeTop)

	_, err := env.posts.AddComment(ctx, parent, &model.Post{Text: "unsaved"})
	assert.ErrorIs(t, err, ErrCommentNotPersisted)

	_, err = env.posts.AddComment(ctx, parent, &model.Post{ID: 777})
	assert.ErrorIs(t, err, ErrCommentNotPersisted)

	_, err = env.posts.AddComment(ctx, parent, parent)
	assert.ErrorIs(t, err, ErrInvalidComment)
}

func TestAddPostLikeTwiceKeepsOneLike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	liker := env.user(t)
	p := env.post(t, author, model.PostTypeTop)

	p, err := env.posts.AddPostLike(ctx, p, liker)
	require.NoError(t, err)
	p, err = env.posts.AddPostLike(ctx, p, liker)
	require.NoError(t, err)

	require.Len(t, p.Likes, 1)
	assert.Equal(t, liker.ID, p.Likes[0].UserID)
}

func TestRemovePostLike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	a := env.user(t)
	b := env.user(t)
	p := env.post(t, author, model.PostTypeTop)

	_, err := env.posts.AddPostLike(ctx, p, a)
	require.NoError(t, err)
	p, err = env.posts.AddPostLike(ctx, p, b)
	require.NoError(t, err)
	require.Len(t, p.Likes, 2)

	p, err = env.posts.RemovePostLike(ctx, p, a)
	require.NoError(t, err)
	require.Len(t, p.Likes, 1)
	assert.Equal(t, b.ID, p.Likes[0].UserID)

	p, err = env.posts.RemovePostLike(ctx, p, a)
	require.NoError(t, err, "removing an absent like is not an error")
	assert.Len(t, p.Likes, 1)
}

func TestEditTextAndImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t)
	p := env.post(t, author, model.PostTypeTop)

	edited, err := env.posts.EditText(ctx, p.ID, "new text")
	require.NoError(t, err)
	assert.Equal(t, "new text", edited.Text)

	edited, err = env.posts.EditImage(ctx, p.ID, "new.png")
	require.NoError(t, err)
	assert.Equal(t, "new.png", edited.ImageURL)
	assert.Equal(t, "new text", edited.Text)

	missing, err := env.posts.EditText(ctx, 4040, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
