package cache

import (
	"context"

	"twistedbrody/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache builds a redis client. A failed ping is logged and tolerated; the
// thumbnail caches work memory-only with a nil client.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - thumbnail cache runs memory-only")
		return nil, err
	}
	return client, nil
}
