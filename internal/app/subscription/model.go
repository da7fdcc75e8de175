package subscription

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeProduct Type = "product"
	TypeBrand   Type = "brand"
)

var ErrNoThreshold = errors.New("subscription needs a price or percentage threshold")
var ErrTargetMissing = errors.New("subscription target is missing")
var ErrTargetConflict = errors.New("subscription must target either a product or a brand, not both")
var ErrUnknownType = errors.New("unknown subscription type")

// Subscription is a user's watch request: either one product by id, or every
// active product of a brand. Unsubscribing soft-deletes, history rows keep
// referencing the record.
type Subscription struct {
	Id                  int64
	UserId              int64
	Type                Type
	ProductId           *int64
	BrandName           string
	PriceThreshold      *decimal.Decimal
	PercentageThreshold *float64
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

func (s *Subscription) Exists() bool {
	return s.Id > 0
}

// Validate rejects malformed subscriptions before they reach the store.
func (s *Subscription) Validate() error {
	switch s.Type {
	case TypeProduct:
		if s.ProductId == nil {
			return ErrTargetMissing
		}
		if s.BrandName != "" {
			return ErrTargetConflict
		}
	case TypeBrand:
		if s.BrandName == "" {
			return ErrTargetMissing
		}
		if s.ProductId != nil {
			return ErrTargetConflict
		}
	default:
		return ErrUnknownType
	}

	if s.PriceThreshold == nil && s.PercentageThreshold == nil {
		return ErrNoThreshold
	}

	return nil
}
