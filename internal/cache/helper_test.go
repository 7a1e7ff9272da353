package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedProfile struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissFetchesAndStores(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetchCalls := 0
	var dest cachedProfile
	err := Aside(ctx, UserKey(7), &dest, UserTTL, func() error {
		fetchCalls++
		dest = cachedProfile{ID: 7, Name: "alice"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, "alice", dest.Name)
	assert.True(t, mr.Exists(UserKey(7)))

	// Second read hits the cache and skips fetch.
	var again cachedProfile
	err = Aside(ctx, UserKey(7), &again, UserTTL, func() error {
		fetchCalls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, dest, again)
}

func TestAside_TTLExpiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var dest cachedProfile
	require.NoError(t, Aside(ctx, FeedKey, &dest, FeedTTL, func() error {
		dest = cachedProfile{ID: 1}
		return nil
	}))

	mr.FastForward(FeedTTL + time.Second)

	fetchCalls := 0
	require.NoError(t, Aside(ctx, FeedKey, &dest, FeedTTL, func() error {
		fetchCalls++
		return nil
	}))
	assert.Equal(t, 1, fetchCalls)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, TweetKey(3), cachedProfile{ID: 3}, TweetTTL))
	require.True(t, mr.Exists(TweetKey(3)))

	InvalidateTweet(ctx, 3)
	assert.False(t, mr.Exists(TweetKey(3)))
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetchCalls := 0
	var dest cachedProfile
	err := Aside(ctx, UserKey(1), &dest, UserTTL, func() error {
		fetchCalls++
		dest.ID = 1
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, uint(1), dest.ID)
}
