package persistence

import (
	"context"
	"fmt"
	"time"

	"twistedbrody/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NewMongoDb builds a client for the remote document store.
func NewMongoDb(host, port, user, password, name string) (*mongo.Client, error) {
	uri := fmt.Sprintf("mongodb://%s:%s/%s", host, port, name)
	if user != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin", user, password, host, port, name)
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, nil
}

// ConnectWithRetry probes reachability of the document store with capped
// exponential backoff and a bounded attempt count. Exhausting the attempts is
// a terminal initialization failure.
func ConnectWithRetry(ctx context.Context, host, port, user, password, name string, attempts int, probeTimeout time.Duration) (*mongo.Client, error) {
	if attempts <= 0 {
		attempts = 1
	}
	client, err := NewMongoDb(host, port, user, password, name)
	if err != nil {
		return nil, err
	}

	backoff := 500 * time.Millisecond
	const maxBackoff = 8 * time.Second
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		lastErr = client.Ping(probeCtx, nil)
		cancel()
		if lastErr == nil {
			logger.GetLogger().WithField("attempt", attempt).Info("MongoDB connected successfully")
			return client, nil
		}
		logger.GetLogger().
			WithField("attempt", attempt).
			WithField("error", lastErr).
			Warn("MongoDB not reachable, retrying")
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			_ = client.Disconnect(context.Background())
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	_ = client.Disconnect(context.Background())
	return nil, fmt.Errorf("mongo unreachable after %d attempts: %w", attempts, lastErr)
}
