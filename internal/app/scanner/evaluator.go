package scanner

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ka4en3/smartcatcher/internal/app/catalog"
	"github.com/ka4en3/smartcatcher/internal/app/helpers"
	"github.com/ka4en3/smartcatcher/internal/app/logger"
	"github.com/ka4en3/smartcatcher/internal/app/notification"
	"github.com/ka4en3/smartcatcher/internal/app/subscription"
)

type SubscriptionSource interface {
	ForProduct(ctx context.Context, productId int64) ([]subscription.Subscription, error)
	ForBrand(ctx context.Context, brandName string) ([]subscription.Subscription, error)
}

// Evaluator turns a confirmed price change into notification intents. Only
// price decreases can notify, and each subscription yields at most one intent
// per change.
type Evaluator struct {
	subscriptions SubscriptionSource
	logger        logger.LoggerInterface
}

func NewEvaluator(subscriptions SubscriptionSource, logger logger.LoggerInterface) Evaluator {
	return Evaluator{
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// Evaluate collects intents for every subscription the change satisfies.
// The absolute threshold is checked before the percentage one, so a
// subscription carrying both produces a threshold alert when both match.
func (e *Evaluator) Evaluate(ctx context.Context, product catalog.TrackedProduct, oldPrice *decimal.Decimal, newPrice decimal.Decimal, currency string) []notification.Intent {
	if oldPrice == nil || newPrice.GreaterThanOrEqual(*oldPrice) {
		return nil
	}

	intents := []notification.Intent{}
	seen := map[int64]bool{}

	productSubscriptions, err := e.subscriptions.ForProduct(ctx, product.Id)
	if err != nil {
		e.logger.Println("Unable to load product subscriptions:", err)
	}

	for _, model := range productSubscriptions {
		if seen[model.Id] {
			continue
		}

		if intent, ok := e.match(model, product, *oldPrice, newPrice, currency, ""); ok {
			intents = append(intents, intent)
			seen[model.Id] = true
		}
	}

	if product.Brand == "" {
		return intents
	}

	brandSubscriptions, err := e.subscriptions.ForBrand(ctx, product.Brand)
	if err != nil {
		e.logger.Println("Unable to load brand subscriptions:", err)
	}

	for _, model := range brandSubscriptions {
		if seen[model.Id] {
			continue
		}

		if intent, ok := e.match(model, product, *oldPrice, newPrice, currency, product.Brand); ok {
			intents = append(intents, intent)
			seen[model.Id] = true
		}
	}

	return intents
}

// Match single subscription against the price change.
func (e *Evaluator) match(model subscription.Subscription, product catalog.TrackedProduct, oldPrice decimal.Decimal, newPrice decimal.Decimal, currency string, brandName string) (notification.Intent, bool) {
	kind := notification.Kind("")

	if model.PriceThreshold != nil && newPrice.LessThanOrEqual(*model.PriceThreshold) {
		kind = notification.KindPriceThreshold
	} else if model.PercentageThreshold != nil {
		if helpers.DropPercent(oldPrice, newPrice).GreaterThanOrEqual(decimal.NewFromFloat(*model.PercentageThreshold)) {
			kind = notification.KindPriceDrop
		}
	}

	if kind == "" {
		return notification.Intent{}, false
	}

	intent := notification.NewIntent(model.UserId, model.Id, product.Id, kind)
	intent.BrandName = brandName
	intent.Title = "Price Alert!"
	intent.Message = priceDropMessage(oldPrice, newPrice, currency)
	intent.OldPrice = &oldPrice
	intent.NewPrice = &newPrice
	intent.Currency = currency

	if brandName != "" {
		intent.Title = helpers.ConcatStrings(brandName, " Price Alert!")
	}

	return intent, true
}

func priceDropMessage(oldPrice decimal.Decimal, newPrice decimal.Decimal, currency string) string {
	return helpers.ConcatStrings(
		"Price dropped from ", helpers.FormatMoney(oldPrice, currency),
		" to ", helpers.FormatMoney(newPrice, currency),
		" (", helpers.DropPercent(oldPrice, newPrice).StringFixed(1), "% off)",
	)
}
