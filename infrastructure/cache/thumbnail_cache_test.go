package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbnailCacheMemoryOnly(t *testing.T) {
	ctx := context.Background()
	c := NewThumbnailCache(4, 4, nil)

	_, ok := c.Get(ctx, "https://example.com/v1")
	assert.False(t, ok)

	c.Set(ctx, "https://example.com/v1", "https://cdn.example.com/t1.jpg")
	v, ok := c.Get(ctx, "https://example.com/v1")
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/t1.jpg", v)
}

func TestThumbnailCacheVimeoIsSeparate(t *testing.T) {
	ctx := context.Background()
	c := NewThumbnailCache(4, 4, nil)

	c.SetVimeo(ctx, "https://vimeo.com/123", "https://i.vimeocdn.com/t.jpg")

	_, ok := c.Get(ctx, "https://vimeo.com/123")
	assert.False(t, ok, "generic cache must not see vimeo entries")
	v, ok := c.GetVimeo(ctx, "https://vimeo.com/123")
	assert.True(t, ok)
	assert.Equal(t, "https://i.vimeocdn.com/t.jpg", v)
}

func TestThumbnailCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewThumbnailCache(4, 4, nil)

	c.Set(ctx, "url", "thumb")
	c.SetVimeo(ctx, "url", "vimeo-thumb")
	c.Invalidate(ctx, "url")

	_, ok := c.Get(ctx, "url")
	assert.False(t, ok)
	_, ok = c.GetVimeo(ctx, "url")
	assert.False(t, ok)
}

func TestThumbnailCacheBounded(t *testing.T) {
	ctx := context.Background()
	c := NewThumbnailCache(2, 2, nil)

	c.Set(ctx, "a", "1")
	c.Set(ctx, "b", "2")
	c.Set(ctx, "c", "3")

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok, "capacity overflow should evict the oldest entry")
}
