package cache

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/finhealth/pkg/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCache(0)
	defer c.Close() //nolint:errcheck

	got, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k", "unknown"))
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCache_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCache(0)
	defer c.Close() //nolint:errcheck

	require.NoError(t, c.Set(ctx, "k", []byte("v"), -time.Second))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	c.purge(time.Now())
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_CopiesValues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCache(0)
	defer c.Close() //nolint:errcheck

	value := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", value, time.Minute))
	value[0] = 'z'
	got, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), got)
}

func TestJSONHelpers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)
	defer c.Close() //nolint:errcheck

	userID := uuid.New()
	type payload struct {
		Count int `json:"count"`
	}
	_, ok, err := cache.GetJSON[payload](ctx, c, cache.DashboardKey(userID))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.SetJSON(ctx, c, cache.DashboardKey(userID), payload{Count: 3}, time.Minute))
	got, ok, err := cache.GetJSON[payload](ctx, c, cache.DashboardKey(userID))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, got.Count)

	require.NoError(t, c.Delete(ctx, cache.UserKeys(userID)...))
	_, ok, _ = cache.GetJSON[payload](ctx, c, cache.DashboardKey(userID))
	assert.False(t, ok)
}
