package subscription

import (
	"context"
)

type Repository interface {
	FindById(ctx context.Context, id int64) (Subscription, error)
	FindForProduct(ctx context.Context, productId int64) ([]Subscription, error)
	FindForBrand(ctx context.Context, brandName string) ([]Subscription, error)
	FindForUser(ctx context.Context, userId int64, page int, perPage int) []Subscription
	GetCountForUser(ctx context.Context, userId int64) int
	Insert(ctx context.Context, model Subscription) (Subscription, error)
	UpdateThresholds(ctx context.Context, model Subscription) (Subscription, error)
	SoftDelete(ctx context.Context, id int64) bool
}
