package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrackedProduct is a marketplace listing under observation.
type TrackedProduct struct {
	Id            int64
	Url           string
	Title         string
	Brand         string
	CurrentPrice  *decimal.Decimal
	Currency      string
	StoreName     string
	ExternalId    string
	ImageUrl      string
	IsActive      bool
	LastScrapedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func (p *TrackedProduct) Exists() bool {
	return p.Id > 0
}

// HasPrice reports whether the product has been priced at least once.
func (p *TrackedProduct) HasPrice() bool {
	return p.CurrentPrice != nil
}

// PriceSample is an immutable, timestamped price observation.
// One row per accepted price change, never one per scan attempt.
type PriceSample struct {
	Id         int64
	ProductId  int64
	Price      decimal.Decimal
	Currency   string
	RecordedAt time.Time
}
