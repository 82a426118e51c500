package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSet(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	// Miss
	_, ok := c.Get(ctx, "search:batman::")
	assert.False(t, ok, "empty cache should miss")

	// Set and hit
	err := c.Set(ctx, "search:batman::", []byte(`{"Response":"True"}`), time.Hour)
	require.NoError(t, err)

	got, ok := c.Get(ctx, "search:batman::")
	require.True(t, ok, "should hit after set")
	assert.Equal(t, []byte(`{"Response":"True"}`), got)

	// Different key should miss
	_, ok = c.Get(ctx, "search:batman:movie:")
	assert.False(t, ok, "different key should miss")
}

func TestMemory_Overwrite(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "movie:tt0372784", []byte(`old`), time.Hour))
	require.NoError(t, c.Set(ctx, "movie:tt0372784", []byte(`new`), time.Hour))

	got, ok := c.Get(ctx, "movie:tt0372784")
	require.True(t, ok)
	assert.Equal(t, []byte(`new`), got, "second write should win")
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "movie:tt0372784", []byte(`{}`), 10*time.Millisecond))

	// Should hit immediately
	_, ok := c.Get(ctx, "movie:tt0372784")
	require.True(t, ok)

	// Wait for expiry
	time.Sleep(20 * time.Millisecond)

	// Should miss after expiry, entry is only skipped, never evicted
	_, ok = c.Get(ctx, "movie:tt0372784")
	assert.False(t, ok, "should miss after TTL")
}
