package subscription

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ka4en3/smartcatcher/internal/app/core"
	"github.com/ka4en3/smartcatcher/internal/app/logger"
)

const ListPerPageDefault = 10

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

func (s *Service) FindById(ctx context.Context, id int64) (Subscription, error) {
	return s.repository.FindById(ctx, id)
}

func (s *Service) ForProduct(ctx context.Context, productId int64) ([]Subscription, error) {
	return s.repository.FindForProduct(ctx, productId)
}

func (s *Service) ForBrand(ctx context.Context, brandName string) ([]Subscription, error) {
	return s.repository.FindForBrand(ctx, brandName)
}

// Create subscription after validating its target and thresholds.
func (s *Service) Create(ctx context.Context, model Subscription) (Subscription, error) {
	if err := model.Validate(); err != nil {
		return Subscription{}, err
	}

	saved, err := s.repository.Insert(ctx, model)
	if err != nil {
		s.logger.Println("Unable to save subscription:", err)
		return Subscription{}, err
	}

	return saved, nil
}

// Update thresholds keeping at least one of them set.
func (s *Service) UpdateThresholds(ctx context.Context, id int64, priceThreshold *decimal.Decimal, percentageThreshold *float64) (Subscription, error) {
	model, err := s.repository.FindById(ctx, id)
	if err != nil {
		return Subscription{}, err
	}

	model.PriceThreshold = priceThreshold
	model.PercentageThreshold = percentageThreshold

	if err := model.Validate(); err != nil {
		return Subscription{}, err
	}

	return s.repository.UpdateThresholds(ctx, model)
}

func (s *Service) Unsubscribe(ctx context.Context, id int64) bool {
	return s.repository.SoftDelete(ctx, id)
}

// List user's active subscriptions page by page.
func (s *Service) ListForUser(ctx context.Context, userId int64, page int) core.PaginatedResult[Subscription] {
	if page < 1 {
		page = 1
	}

	items := s.repository.FindForUser(ctx, userId, page, ListPerPageDefault)
	total := s.repository.GetCountForUser(ctx, userId)

	return core.NewPaginatedResult(items, page, ListPerPageDefault, total)
}
