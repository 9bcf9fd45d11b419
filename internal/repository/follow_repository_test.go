package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-feed/internal/testutil"
)

func TestFollowRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, 3)
	a, b, c := users[0].ID, users[1].ID, users[2].ID

	require.NoError(t, repo.Create(ctx, a, b))
	require.NoError(t, repo.Create(ctx, a, b), "duplicate follow is ignored")
	require.NoError(t, repo.Create(ctx, a, c))
	require.NoError(t, repo.Create(ctx, c, b))

	ok, err := repo.Exists(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Exists(ctx, b, a)
	require.NoError(t, err)
	assert.False(t, ok)

	followees, err := repo.ListFolloweeIDs(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []uint{b, c}, followees)

	followers, err := repo.ListFollowerIDs(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []uint{a, c}, followers)

	require.NoError(t, repo.Delete(ctx, a, b))
	require.NoError(t, repo.Delete(ctx, a, b))
	followers, err = repo.ListFollowerIDs(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []uint{c}, followers)

	none, err := repo.ListFolloweeIDs(ctx, b)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
