package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the client shared by the job queues and the menu cache.
// A dead Redis means no receipts and no caching, so the server refuses to
// start rather than limp along.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
