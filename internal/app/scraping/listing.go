package scraping

import (
	"github.com/shopspring/decimal"
)

// ScrapedListing is the normalized output of a source adapter. It lives only
// for the duration of one scan; an accepted price becomes a history sample.
type ScrapedListing struct {
	Title       string
	Price       *decimal.Decimal
	Currency    string
	Brand       string
	ImageUrl    string
	Description string
	ExternalId  string
}
