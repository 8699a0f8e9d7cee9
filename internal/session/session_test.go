package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/Odelf18/career-maps/internal/session"
	"github.com/Odelf18/career-maps/internal/viewsync"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession() *session.Session {
	return session.New(viewsync.InitialViewport(viewsync.DefaultMapSettings()))
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	s := newSession()
	assert.True(t, session.ValidID(s.ID))
	assert.Equal(t, domain.DefaultFilterState(), s.State)
	assert.Nil(t, s.Viewport.Bounds)
	assert.Equal(t, viewsync.DefaultZoom, s.Viewport.Zoom)
	assert.False(t, session.ValidID("not-a-session"))
}

func TestClone_NoAliasing(t *testing.T) {
	t.Parallel()

	s := newSession()
	s.State.ActiveTags = []string{"Remote"}
	s.Viewport.Bounds = &domain.Bounds{South: 1, West: 2, North: 3, East: 4}

	c := s.Clone()
	c.State.ActiveTags[0] = "Hybrid"
	c.Viewport.Bounds.North = 9

	assert.Equal(t, "Remote", s.State.ActiveTags[0])
	assert.InDelta(t, 3.0, s.Viewport.Bounds.North, 0)
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	store := session.NewMemoryStore(time.Hour, logger.NewNop()).WithClock(func() time.Time { return now })
	ctx := context.Background()

	s := newSession()
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	got.State.ActiveTags = append(got.State.ActiveTags, "Remote")
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, again.State.ActiveTags)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, s.ID), session.ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	store := session.NewMemoryStore(time.Minute, logger.NewNop()).WithClock(func() time.Time { return now })
	ctx := context.Background()

	s := newSession()
	require.NoError(t, store.Save(ctx, s))

	now = now.Add(30 * time.Second)
	require.NoError(t, store.Save(ctx, s))

	now = now.Add(45 * time.Second)
	_, err := store.Get(ctx, s.ID)
	require.NoError(t, err, "save refreshes the ttl")

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, s.ID)
	require.ErrorIs(t, err, session.ErrNotFound)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, store.Sweep())
	assert.Zero(t, store.Sweep())
}

func TestMemoryStore_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(time.Millisecond, logger.NewNop())
	require.NoError(t, store.Save(context.Background(), newSession()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		n, _ := store.Count(context.Background())
		return n == 0 && store.Sweep() == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func newRedisStore(t *testing.T, ttl time.Duration) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, "", ttl), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t, time.Hour)
	ctx := context.Background()

	s := newSession()
	s.State.SearchQuery = "engineer"
	s.State.ActiveTags = []string{"Remote", "Senior"}
	s.Viewport.Bounds = &domain.Bounds{South: 37.5, West: -77.5, North: 37.6, East: -77.4}
	require.NoError(t, store.Save(ctx, s))

	assert.True(t, mr.Exists(session.DefaultKeyPrefix+s.ID))
	assert.Equal(t, time.Hour, mr.TTL(session.DefaultKeyPrefix+s.ID))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.State, got.State)
	require.NotNil(t, got.Viewport.Bounds)
	assert.Equal(t, *s.Viewport.Bounds, *got.Viewport.Bounds)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, s.ID), session.ErrNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	s := newSession()
	require.NoError(t, store.Save(ctx, s))

	mr.FastForward(2 * time.Minute)
	_, err := store.Get(ctx, s.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_EmptyTagsDecodeNonNil(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t, time.Hour)
	id := newSession().ID
	require.NoError(t, mr.Set(session.DefaultKeyPrefix+id, `{"id":"`+id+`","state":{"searchQuery":"","selectedIndustry":"all","activeTags":null}}`))

	got, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, got.State.ActiveTags)
}
