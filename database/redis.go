package database

import (
	"github.com/go-redis/redis/v8"
)

// NewRedisClient builds a Redis client from a redis:// URL. An empty URL
// returns nil, which callers treat as caching disabled.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}
