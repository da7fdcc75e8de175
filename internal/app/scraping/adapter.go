package scraping

import (
	"context"
)

// Adapter is a per-marketplace scraping strategy. Implementations are
// stateless except for short-lived credential caches.
type Adapter interface {
	Name() string
	CanHandle(url string) bool
	Scrape(ctx context.Context, url string) (ScrapedListing, error)
}
