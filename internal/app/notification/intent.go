package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindPriceDrop        Kind = "price_drop"
	KindPriceThreshold   Kind = "price_threshold"
	KindProductAvailable Kind = "product_available"
	KindError            Kind = "error"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Intent is a notification waiting to be delivered. Evaluation produces
// intents, the outbox persists them, a dispatcher pushes them out.
type Intent struct {
	Id             uuid.UUID
	UserId         int64
	SubscriptionId int64
	ProductId      int64
	BrandName      string
	Kind           Kind
	Title          string
	Message        string
	OldPrice       *decimal.Decimal
	NewPrice       *decimal.Decimal
	Currency       string
	Status         Status
	CreatedAt      time.Time
	SentAt         *time.Time
}

func NewIntent(userId int64, subscriptionId int64, productId int64, kind Kind) Intent {
	return Intent{
		Id:             uuid.New(),
		UserId:         userId,
		SubscriptionId: subscriptionId,
		ProductId:      productId,
		Kind:           kind,
		Status:         StatusPending,
		CreatedAt:      time.Now(),
	}
}
