package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RecordIfAllowed(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()
	now := time.Now()

	u, err := s.RecordIfAllowed(ctx, "k", now, time.Minute, 2, 1)
	require.NoError(t, err)
	assert.True(t, u.Recorded)
	assert.Equal(t, int64(1), u.Count)
	assert.Equal(t, now, u.Oldest)

	u, err = s.RecordIfAllowed(ctx, "k", now.Add(time.Second), time.Minute, 2, 2)
	require.NoError(t, err)
	assert.False(t, u.Recorded)
	assert.Equal(t, int64(1), u.Count)

	u, err = s.RecordIfAllowed(ctx, "k", now.Add(time.Minute), time.Minute, 2, 2)
	require.NoError(t, err)
	assert.True(t, u.Recorded, "expired timestamp frees its slot")
	assert.Equal(t, int64(2), u.Count)
}

func TestMemoryStore_OutOfOrderStamps(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()
	now := time.Now()

	_, err := s.RecordIfAllowed(ctx, "k", now.Add(30*time.Second), time.Minute, 5, 1)
	require.NoError(t, err)
	_, err = s.RecordIfAllowed(ctx, "k", now, time.Minute, 5, 1)
	require.NoError(t, err)

	u, err := s.Count(ctx, "k", now.Add(time.Minute), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.Count, "expired stamp behind a newer one is dropped")
	assert.Equal(t, now.Add(30*time.Second), u.Oldest)

	_, err = s.RecordIfAllowed(ctx, "other", now.Add(time.Second), time.Minute, 5, 1)
	require.NoError(t, err)
	u, err = s.RecordIfAllowed(ctx, "other", now, time.Minute, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, now, u.Oldest)
}

func TestMemoryStore_CountAndDelete(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()
	now := time.Now()

	u, err := s.Count(ctx, "missing", now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, Usage{}, u)

	_, _ = s.RecordIfAllowed(ctx, "k", now, time.Minute, 10, 3)
	u, err = s.Count(ctx, "k", now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.Count)
	assert.False(t, u.Recorded)

	require.NoError(t, s.Delete(ctx, "k"))
	u, err = s.Count(ctx, "k", now, time.Minute)
	require.NoError(t, err)
	assert.Zero(t, u.Count)
}

func TestMemoryStore_Cleanup(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(WithCleanupInterval(time.Hour))
	defer s.Close()
	now := time.Now()

	_, _ = s.RecordIfAllowed(context.Background(), "old", now.Add(-2*time.Minute), time.Minute, 5, 1)
	_, _ = s.RecordIfAllowed(context.Background(), "fresh", now, time.Minute, 5, 1)

	s.cleanup(now)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.NotContains(t, s.windows, "old")
	assert.Contains(t, s.windows, "fresh")
}

func TestMemoryStore_CloseIdempotent(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
