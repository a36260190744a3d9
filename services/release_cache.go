package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/trcsocial/shopify-csv-uploader/models"
)

const (
	releaseCachePrefix     = "release:detail:"
	defaultReleaseCacheTTL = 12 * time.Hour
)

// ReleaseCache keeps live catalog lookups in Redis so repeated runs against
// the same catalog ids skip the API. Every failure degrades to a cache miss.
type ReleaseCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewReleaseCache(client *redis.Client) *ReleaseCache {
	return &ReleaseCache{
		redis: client,
		ttl:   defaultReleaseCacheTTL,
	}
}

// GetRelease returns the cached release for a catalog id, if present.
func (rc *ReleaseCache) GetRelease(ctx context.Context, junoCat string) (models.Release, bool) {
	cached, err := rc.redis.Get(ctx, releaseCachePrefix+junoCat).Result()
	if err != nil {
		return models.Release{}, false
	}

	var rel models.Release
	if err := json.Unmarshal([]byte(cached), &rel); err != nil {
		zap.L().Warn("Failed to unmarshal cached release",
			zap.String("juno_cat", junoCat),
			zap.Error(err),
		)
		return models.Release{}, false
	}
	return rel, true
}

// SetReleaseAsync caches a release without blocking the export pipeline.
func (rc *ReleaseCache) SetReleaseAsync(junoCat string, rel models.Release) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(rel)
		if err != nil {
			zap.L().Warn("Failed to marshal release for caching",
				zap.String("juno_cat", junoCat),
				zap.Error(err),
			)
			return
		}
		if err := rc.redis.Set(bgCtx, releaseCachePrefix+junoCat, data, rc.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache release",
				zap.String("juno_cat", junoCat),
				zap.Error(err),
			)
		}
	}()
}
