package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ka4en3/smartcatcher/internal/app/helpers"
	"github.com/ka4en3/smartcatcher/internal/app/logger"
	"github.com/ka4en3/smartcatcher/internal/app/scraping"
)

const HistoryLimitDefault = 100

type Service struct {
	repository Repository
	logger     logger.LoggerInterface
}

func NewService(repository Repository, logger logger.LoggerInterface) Service {
	return Service{
		repository: repository,
		logger:     logger,
	}
}

func (s *Service) FindById(ctx context.Context, id int64) (TrackedProduct, error) {
	return s.repository.FindById(ctx, id)
}

// Find model by URL. The URL is normalized before lookup.
func (s *Service) FindByUrl(ctx context.Context, url string) (TrackedProduct, error) {
	return s.repository.FindByUrl(ctx, helpers.NormalizeUrl(url))
}

func (s *Service) DueForScan(ctx context.Context, limit int) ([]TrackedProduct, error) {
	return s.repository.FindDueForScan(ctx, limit)
}

func (s *Service) ActiveByBrand(ctx context.Context, brand string) ([]TrackedProduct, error) {
	return s.repository.FindActiveByBrand(ctx, brand)
}

// Create tracked product from a freshly scraped listing.
func (s *Service) CreateFromListing(ctx context.Context, url string, listing scraping.ScrapedListing, storeName string) (TrackedProduct, error) {
	model := TrackedProduct{
		Url:          helpers.NormalizeUrl(url),
		Title:        listing.Title,
		Brand:        listing.Brand,
		CurrentPrice: listing.Price,
		Currency:     listing.Currency,
		StoreName:    storeName,
		ExternalId:   listing.ExternalId,
		ImageUrl:     listing.ImageUrl,
	}

	saved, err := s.repository.Insert(ctx, model)
	if err != nil {
		s.logger.Println("Unable to save product:", err)
		return TrackedProduct{}, err
	}

	return saved, nil
}

func (s *Service) RecordPriceChange(ctx context.Context, productId int64, price decimal.Decimal, currency string) error {
	return s.repository.RecordPriceChange(ctx, productId, price, currency)
}

func (s *Service) MarkScanned(ctx context.Context, productId int64) error {
	return s.repository.MarkScanned(ctx, productId)
}

func (s *Service) PriceHistory(ctx context.Context, productId int64, limit int) ([]PriceSample, error) {
	if limit == 0 {
		limit = HistoryLimitDefault
	}

	return s.repository.PriceHistory(ctx, productId, limit)
}

func (s *Service) Deactivate(ctx context.Context, productId int64) bool {
	return s.repository.Deactivate(ctx, productId)
}
