package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/suryaansh001/shayari-backend/internal/shayari"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, ttl), mr
}

func TestPublicListing_RoundTrip(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	_, err := c.GetPublic(ctx)
	require.ErrorIs(t, err, ErrMiss)

	now := time.Now().UTC().Truncate(time.Millisecond)
	in := []*shayari.Shayari{{ID: "shy-1", Title: "t", Content: "c", IsPublic: true, CreatedAt: now, UpdatedAt: now, Reactions: shayari.Reactions{Fire: 2}}}
	gen, err := c.PublicGeneration(ctx)
	require.NoError(t, err)
	require.NoError(t, c.SetPublic(ctx, gen, in))
	require.True(t, mr.Exists(publicListKey))
	require.Equal(t, 30*time.Second, mr.TTL(publicListKey))

	out, err := c.GetPublic(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "shy-1", out[0].ID)
	require.Equal(t, int64(2), out[0].Reactions.Fire)
	require.NotNil(t, out[0].MoodTags)
	require.True(t, now.Equal(out[0].CreatedAt))

	require.NoError(t, c.InvalidatePublic(ctx))
	_, err = c.GetPublic(ctx)
	require.ErrorIs(t, err, ErrMiss)
}

func TestPublicListing_Expires(t *testing.T) {
	c, mr := newTestCache(t, time.Second)
	ctx := context.Background()
	require.NoError(t, c.SetPublic(ctx, 0, []*shayari.Shayari{}))
	mr.FastForward(2 * time.Second)
	_, err := c.GetPublic(ctx)
	require.ErrorIs(t, err, ErrMiss)
}

func TestPublicListing_CorruptEntryDropped(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(publicListKey, "{not json"))
	_, err := c.GetPublic(context.Background())
	require.Error(t, err)
	require.False(t, mr.Exists(publicListKey))
}

func TestPublicListing_ZeroTTLSkipsWrites(t *testing.T) {
	c, mr := newTestCache(t, 0)
	require.NoError(t, c.SetPublic(context.Background(), 0, []*shayari.Shayari{}))
	require.False(t, mr.Exists(publicListKey))
}

func TestPublicListing_StaleGenerationNotWritten(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	gen, err := c.PublicGeneration(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), gen)

	require.NoError(t, c.InvalidatePublic(ctx))
	err = c.SetPublic(ctx, gen, []*shayari.Shayari{{ID: "shy-1", IsPublic: true}})
	require.ErrorIs(t, err, ErrStale)
	require.False(t, mr.Exists(publicListKey))

	gen, err = c.PublicGeneration(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), gen)
	require.NoError(t, c.SetPublic(ctx, gen, []*shayari.Shayari{}))
	require.True(t, mr.Exists(publicListKey))
}
