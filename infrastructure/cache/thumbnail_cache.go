package cache

import (
	"context"
	"time"

	"twistedbrody/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const redisThumbTTL = 7 * 24 * time.Hour

// ThumbnailCache holds the two session caches: a generic video URL → thumbnail
// map and a Vimeo-specific one. Both are bounded LRUs; an optional redis
// client adds a write-through layer so resolved thumbnails survive restarts.
type ThumbnailCache struct {
	generic *LRU
	vimeo   *LRU
	redis   *redis.Client
}

func NewThumbnailCache(genericSize, vimeoSize int, redisClient *redis.Client) *ThumbnailCache {
	return &ThumbnailCache{
		generic: NewLRU(genericSize),
		vimeo:   NewLRU(vimeoSize),
		redis:   redisClient,
	}
}

func (t *ThumbnailCache) Get(ctx context.Context, videoURL string) (string, bool) {
	return t.get(ctx, t.generic, "thumb:", videoURL)
}

func (t *ThumbnailCache) Set(ctx context.Context, videoURL, thumbURL string) {
	t.set(ctx, t.generic, "thumb:", videoURL, thumbURL)
}

func (t *ThumbnailCache) GetVimeo(ctx context.Context, videoURL string) (string, bool) {
	return t.get(ctx, t.vimeo, "vimeo:", videoURL)
}

func (t *ThumbnailCache) SetVimeo(ctx context.Context, videoURL, thumbURL string) {
	t.set(ctx, t.vimeo, "vimeo:", videoURL, thumbURL)
}

// Invalidate drops the URL from both caches and from redis.
func (t *ThumbnailCache) Invalidate(ctx context.Context, videoURL string) {
	t.generic.Remove(videoURL)
	t.vimeo.Remove(videoURL)
	if t.redis != nil {
		if err := t.redis.Del(ctx, "thumb:"+videoURL, "vimeo:"+videoURL).Err(); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis thumbnail invalidation failed")
		}
	}
}

func (t *ThumbnailCache) get(ctx context.Context, lru *LRU, prefix, videoURL string) (string, bool) {
	if v, ok := lru.Get(videoURL); ok {
		return v, true
	}
	if t.redis == nil {
		return "", false
	}
	v, err := t.redis.Get(ctx, prefix+videoURL).Result()
	if err != nil {
		return "", false
	}
	lru.Add(videoURL, v)
	return v, true
}

func (t *ThumbnailCache) set(ctx context.Context, lru *LRU, prefix, videoURL, thumbURL string) {
	lru.Add(videoURL, thumbURL)
	if t.redis != nil {
		if err := t.redis.Set(ctx, prefix+videoURL, thumbURL, redisThumbTTL).Err(); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis thumbnail write failed")
		}
	}
}
