package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	FindById(ctx context.Context, id int64) (TrackedProduct, error)
	FindByUrl(ctx context.Context, url string) (TrackedProduct, error)
	FindDueForScan(ctx context.Context, limit int) ([]TrackedProduct, error)
	FindActiveByBrand(ctx context.Context, brand string) ([]TrackedProduct, error)
	Insert(ctx context.Context, model TrackedProduct) (TrackedProduct, error)
	RecordPriceChange(ctx context.Context, productId int64, price decimal.Decimal, currency string) error
	MarkScanned(ctx context.Context, productId int64) error
	PriceHistory(ctx context.Context, productId int64, limit int) ([]PriceSample, error)
	Deactivate(ctx context.Context, productId int64) bool
}
