package cache

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("jobid:123")
	assert.True(t, strings.HasPrefix(a, keyPrefix))
	assert.Equal(t, a, CacheKey("jobid:123"))
	assert.NotEqual(t, a, CacheKey("jobid:124"))
}

func exerciseStore(t *testing.T, c Cache) {
	t.Helper()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)
	require.NoError(t, c.Delete("k"), "deleting a missing key is not an error")

	require.NoError(t, c.Set("k2", []byte("v2"), 0))
	require.NoError(t, c.Clear())
	_, ok = c.Get("k2")
	assert.False(t, ok)
}

func TestMemoryCache(t *testing.T) {
	exerciseStore(t, NewMemoryCache(0, time.Minute))
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(0, time.Minute)
	require.NoError(t, c.Set("k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDiskCache(t *testing.T) {
	exerciseStore(t, NewDiskCache(filepath.Join(t.TempDir(), "cache"), time.Hour))
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 0)
	require.NoError(t, c.Set("k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("forever", []byte("v"), 0))
	_, ok = c.Get("forever")
	assert.True(t, ok)
}

func newLayered(t *testing.T, dir string) (*LayeredCache, *MemoryCache) {
	t.Helper()
	front := NewMemoryCache(0, time.Minute)
	return NewLayeredCache(front, NewDiskCache(dir, time.Hour), time.Hour), front
}

func TestLayeredCache(t *testing.T) {
	c, _ := newLayered(t, t.TempDir())
	exerciseStore(t, c)
}

func TestLayeredCache_PromotesFromBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewDiskCache(dir, time.Hour).Set("k", []byte("v"), 0))

	c, front := newLayered(t, dir)
	_, ok := front.Get("k")
	require.False(t, ok)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	mem, ok := front.Get("k")
	require.True(t, ok, "back-tier hits should be promoted to the front tier")
	assert.Equal(t, []byte("v"), mem)
}

func TestLayeredCache_FrontTTLCapped(t *testing.T) {
	front := NewMemoryCache(0, time.Minute)
	back := NewMemoryCache(0, time.Minute)
	c := NewLayeredCache(front, back, 10*time.Millisecond)

	require.NoError(t, c.Set("k", []byte("v1"), 0))
	// Another writer updates the shared tier
	require.NoError(t, back.Set("k", []byte("v2"), 0))

	got, _ := c.Get("k")
	assert.Equal(t, []byte("v1"), got, "front tier answers first")

	time.Sleep(30 * time.Millisecond)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), got, "front entry expires and the shared tier is read again")
}

func TestLayeredCache_DefaultFrontTTL(t *testing.T) {
	c := NewLayeredCache(NewMemoryCache(0, time.Minute), NewMemoryCache(0, time.Minute), 0)
	assert.Equal(t, DefaultFrontTTL, c.frontTTL)
	assert.Equal(t, time.Second, c.frontFor(time.Second))
	assert.Equal(t, DefaultFrontTTL, c.frontFor(time.Hour))
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		wantErr bool
	}{
		{"", false},
		{"memory", false},
		{"disk", false},
		{"Layered", false},
		{"redis", true}, // no address configured
		{"memcached", true},
	}
	for _, tt := range tests {
		_, err := New(model.CacheConfig{Backend: tt.backend, Dir: dir, TTL: time.Hour})
		if tt.wantErr {
			assert.Error(t, err, tt.backend)
		} else {
			assert.NoError(t, err, tt.backend)
		}
	}
}

// TestRedisCache_Integration requires a running Redis.
// We skip if connection fails.
func TestRedisCache_Integration(t *testing.T) {
	c := NewRedisCache("localhost:6379", "", 0, time.Minute)
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		t.Skip("Skipping Redis integration test: redis not available")
	}

	key := CacheKey("redis-integration")
	require.NoError(t, c.Set(key, []byte("v"), 0))
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	vc := NewVerdictCache(c, 2, time.Minute)
	require.NoError(t, vc.Put("a", entryFor(model.StatusYes)))
	assert.True(t, vc.Contains("a"))

	require.NoError(t, c.Clear())
	_, ok = c.Get(key)
	assert.False(t, ok)
}
