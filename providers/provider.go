package providers

import (
	"context"
	"time"

	"github.com/trcsocial/shopify-csv-uploader/models"
)

// CatalogProvider resolves enrichment metadata for a catalog id.
type CatalogProvider interface {
	FetchRelease(ctx context.Context, junoCat string) (models.Release, error)
}

// JunoConfig carries everything the live client needs. The provider never
// reads the environment itself.
type JunoConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}
