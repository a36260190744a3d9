package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/trcsocial/shopify-csv-uploader/models"
	"github.com/trcsocial/shopify-csv-uploader/providers"
)

// ReleaseLookup resolves catalog metadata under a strategy fixed at startup.
// Lookup never fails: in live mode any provider error degrades to the
// deterministic fallback and the entry is flagged accordingly.
type ReleaseLookup struct {
	strategy models.LookupStrategy
	live     providers.CatalogProvider
	fallback providers.CatalogProvider
	cache    *ReleaseCache
}

// NewReleaseLookup wires the lookup chain. live may be nil when the strategy
// is fallback; cache may be nil to disable caching.
func NewReleaseLookup(strategy models.LookupStrategy, live, fallback providers.CatalogProvider, cache *ReleaseCache) *ReleaseLookup {
	return &ReleaseLookup{
		strategy: strategy,
		live:     live,
		fallback: fallback,
		cache:    cache,
	}
}

// Strategy reports the lookup strategy selected at startup.
func (l *ReleaseLookup) Strategy() models.LookupStrategy {
	return l.strategy
}

// Lookup resolves one catalog id. The returned flags record how the metadata
// was obtained.
func (l *ReleaseLookup) Lookup(ctx context.Context, junoCat string) (models.Release, []string) {
	if l.strategy == models.StrategyFallback || l.live == nil {
		rel, _ := l.fallback.FetchRelease(ctx, junoCat)
		return rel, []string{models.FlagFallback}
	}

	if l.cache != nil {
		if rel, ok := l.cache.GetRelease(ctx, junoCat); ok {
			return rel, []string{models.FlagCached}
		}
	}

	rel, err := l.live.FetchRelease(ctx, junoCat)
	if err != nil {
		zap.L().Warn("Live catalog lookup failed, using fallback",
			zap.String("juno_cat", junoCat),
			zap.Error(err),
		)
		fb, _ := l.fallback.FetchRelease(ctx, junoCat)
		return fb, []string{models.FlagFallback}
	}

	if l.cache != nil {
		l.cache.SetReleaseAsync(junoCat, rel)
	}
	return rel, nil
}
