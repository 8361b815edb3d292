package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldt-io/fingov"
	"github.com/veldt-io/fingov/cache/sqlite"
)

func openTestStore(t *testing.T, ttl time.Duration) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "cache.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t, time.Minute)
	ctx := context.Background()
	sample := fingov.ContentSample{SourceLabel: "yahoo", RawText: "price: $10"}

	require.NoError(t, s.Put(ctx, "s1", "stock:us:tsla", sample))

	got, ok, err := s.Get(ctx, "s1", "stock:us:tsla")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sample, got)
}

func TestStore_PutReplaces(t *testing.T) {
	s := openTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "s1", "k", fingov.ContentSample{RawText: "old"}))
	require.NoError(t, s.Put(ctx, "s1", "k", fingov.ContentSample{RawText: "new"}))

	got, ok, err := s.Get(ctx, "s1", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", got.RawText)
}

func TestStore_Miss(t *testing.T) {
	s := openTestStore(t, time.Minute)

	_, ok, err := s.Get(context.Background(), "s1", "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ClearSession(t *testing.T) {
	s := openTestStore(t, time.Minute)
	ctx := context.Background()
	sample := fingov.ContentSample{RawText: "x"}

	require.NoError(t, s.Put(ctx, "s1", "a", sample))
	require.NoError(t, s.Put(ctx, "s1", "b", sample))
	require.NoError(t, s.Put(ctx, "s2", "a", sample))

	removed, err := s.ClearSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, ok, _ := s.Get(ctx, "s2", "a")
	assert.True(t, ok)
}

func TestStore_ExpiryAndSweep(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for ttl expiry")
	}

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "short.db"), time.Second)
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "s1", "a", fingov.ContentSample{RawText: "x"}))
	require.NoError(t, s.Put(ctx, "s1", "b", fingov.ContentSample{RawText: "x"}))
	time.Sleep(2100 * time.Millisecond)

	_, ok, err := s.Get(ctx, "s1", "a")
	require.NoError(t, err)
	assert.False(t, ok)

	// "a" was already dropped by Get, only "b" is left to sweep.
	n, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
