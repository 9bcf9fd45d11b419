package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T) (Locker, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client), mr
}

func TestRedisLocker_ExclusiveUntilRelease(t *testing.T) {
	l, mr := newRedisLocker(t)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "user:username:alice", time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:user:username:alice"))

	short, cancel := context.WithTimeout(ctx, 60*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(short, "user:username:alice", time.Second)
	assert.ErrorIs(t, err, ErrNotAcquired)

	release()
	assert.False(t, mr.Exists("lock:user:username:alice"))

	release2, err := l.Acquire(ctx, "user:username:alice", time.Second)
	require.NoError(t, err)
	release2()
}

func TestRedisLocker_ExpiredLockIsNotReleasedByOldOwner(t *testing.T) {
	l, mr := newRedisLocker(t)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "k", 100*time.Millisecond)
	require.NoError(t, err)
	mr.FastForward(200 * time.Millisecond)

	release2, err := l.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	release()
	assert.True(t, mr.Exists("lock:k"), "stale release must not drop the new owner's lock")
	release2()
	assert.False(t, mr.Exists("lock:k"))
}

func TestLocalLocker(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	release, err := l.Acquire(ctx, "k", 0)
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(short, "k", 0)
	assert.ErrorIs(t, err, ErrNotAcquired)

	other, err := l.Acquire(ctx, "other", 0)
	require.NoError(t, err)
	other()

	done := make(chan struct{})
	go func() {
		r, err := l.Acquire(ctx, "k", 0)
		if err == nil {
			r()
		}
		close(done)
	}()
	release()
	release() // 重复释放无副作用

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken after release")
	}
}
