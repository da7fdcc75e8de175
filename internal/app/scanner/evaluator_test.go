package scanner_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ka4en3/smartcatcher/internal/app/catalog"
	"github.com/ka4en3/smartcatcher/internal/app/notification"
	"github.com/ka4en3/smartcatcher/internal/app/scanner"
	"github.com/ka4en3/smartcatcher/internal/app/subscription"
)

type noopLogger struct{}

func (l noopLogger) Println(v ...any) {}

type stubSubscriptions struct {
	product []subscription.Subscription
	brand   []subscription.Subscription
}

func (s *stubSubscriptions) ForProduct(ctx context.Context, productId int64) ([]subscription.Subscription, error) {
	return s.product, nil
}

func (s *stubSubscriptions) ForBrand(ctx context.Context, brandName string) ([]subscription.Subscription, error) {
	return s.brand, nil
}

func price(value string) decimal.Decimal {
	result, _ := decimal.NewFromString(value)

	return result
}

func pricePtr(value string) *decimal.Decimal {
	result := price(value)

	return &result
}

func floatPtr(value float64) *float64 {
	return &value
}

func testProduct() catalog.TrackedProduct {
	return catalog.TrackedProduct{
		Id:           5,
		Title:        "Smart Watch",
		Brand:        "TechGear",
		CurrentPrice: pricePtr("100"),
	}
}

func TestEvaluateIgnoresPriceIncrease(t *testing.T) {
	source := &stubSubscriptions{
		product: []subscription.Subscription{
			{Id: 1, UserId: 10, Type: subscription.TypeProduct, PercentageThreshold: floatPtr(1)},
		},
	}

	evaluator := scanner.NewEvaluator(source, noopLogger{})

	intents := evaluator.Evaluate(context.Background(), testProduct(), pricePtr("100"), price("120"), "USD")
	if len(intents) != 0 {
		t.Errorf("Invalid intents count, got: %d, instead of: %d.", len(intents), 0)
	}
}

func TestEvaluateIgnoresFirstObservedPrice(t *testing.T) {
	source := &stubSubscriptions{
		product: []subscription.Subscription{
			{Id: 1, UserId: 10, Type: subscription.TypeProduct, PercentageThreshold: floatPtr(1)},
		},
	}

	evaluator := scanner.NewEvaluator(source, noopLogger{})

	intents := evaluator.Evaluate(context.Background(), testProduct(), nil, price("75"), "USD")
	if len(intents) != 0 {
		t.Errorf("Invalid intents count, got: %d, instead of: %d.", len(intents), 0)
	}
}

func TestEvaluateAbsoluteThreshold(t *testing.T) {
	source := &stubSubscriptions{
		product: []subscription.Subscription{
			{Id: 1, UserId: 10, Type: subscription.TypeProduct, PriceThreshold: pricePtr("80")},
		},
	}

	evaluator := scanner.NewEvaluator(source, noopLogger{})

	intents := evaluator.Evaluate(context.Background(), testProduct(), pricePtr("100"), price("75"), "USD")
	if len(intents) != 1 {
		t.Fatalf("Invalid intents count, got: %d, instead of: %d.", len(intents), 1)
	}

	if intents[0].Kind != notification.KindPriceThreshold {
		t.Errorf("Invalid kind, got: %s, instead of: %s.", intents[0].Kind, notification.KindPriceThreshold)
	}

	if intents[0].Title != "Price Alert!" {
		t.Errorf("Invalid title, got: %s, instead of: %s.", intents[0].Title, "Price Alert!")
	}

	expected := "Price dropped from $100.00 to $75.00 (25.0% off)"
	if intents[0].Message != expected {
		t.Errorf("Invalid message, got: %s, instead of: %s.", intents[0].Message, expected)
	}
}

func TestEvaluatePercentageThreshold(t *testing.T) {
	source := &stubSubscriptions{
		product: []subscription.Subscription{
			{Id: 1, UserId: 10, Type: subscription.TypeProduct, PercentageThreshold: floatPtr(20)},
		},
	}

	evaluator := scanner.NewEvaluator(source, noopLogger{})

	intents := evaluator.Evaluate(context.Background(), testProduct(), pricePtr("100"), price("75"), "USD")
	if len(intents) != 1 {
		t.Fatalf("Invalid intents count, got: %d, instead of: %d.", len(intents), 1)
	}

	if intents[0].Kind != notification.KindPriceDrop {
		t.Errorf("Invalid kind, got: %s, instead of: %s.", intents[0].Kind, notification.KindPriceDrop)
	}
}

func TestEvaluatePercentageBelowThreshold(t *testing.T) {
	source := &stubSubscriptions{
		product: []subscription.Subscription{
			{Id: 1, UserId: 10, Type: subscription.TypeProduct, PercentageThreshold: floatPtr(30)},
		},
	}

	evaluator := scanner.NewEvaluator(source, noopLogger{})

	intents := evaluator.Evaluate(context.Background(), testProduct(), pricePtr("100"), price("75"), "USD")
	if len(intents) != 0 {
		t.Errorf("Invalid intents count, got: %d, instead of: %d.", len(intents), 0)
	}
}

func TestEvaluateAbsoluteWinsOverPercentage(t *testing.T) {
	source := &stubSubscriptions{
		product: []subscription.Subscription{
			{
				Id:                  1,
				UserId:              10,
				Type:                subscription.TypeProduct,
				PriceThreshold:      pricePtr("80"),
				PercentageThreshold: floatPtr(5),
			},
		},
	}

	evaluator := scanner.NewEvaluator(source, noopLogger{})

	intents := evaluator.Evaluate(context.Background(), testProduct(), pricePtr("100"), price("75"), "USD")
	if len(intents) != 1 {
		t.Fatalf("Invalid intents count, got: %d, instead of: %d.", len(intents), 1)
	}

	if intents[0].Kind != notification.KindPriceThreshold {
		t.Errorf("Invalid kind, got: %s, instead of: %s.", intents[0].Kind, notification.KindPriceThreshold)
	}
}

func TestEvaluateBrandSubscription(t *testing.T) {
	source := &stubSubscriptions{
		brand: []subscription.Subscription{
			{Id: 2, UserId: 20, Type: subscription.TypeBrand, BrandName: "TechGear", PercentageThreshold: floatPtr(10)},
		},
	}

	evaluator := scanner.NewEvaluator(source, noopLogger{})

	intents := evaluator.Evaluate(context.Background(), testProduct(), pricePtr("100"), price("75"), "USD")
	if len(intents) != 1 {
		t.Fatalf("Invalid intents count, got: %d, instead of: %d.", len(intents), 1)
	}

	if intents[0].Title != "TechGear Price Alert!" {
		t.Errorf("Invalid title, got: %s, instead of: %s.", intents[0].Title, "TechGear Price Alert!")
	}

	if intents[0].BrandName != "TechGear" {
		t.Errorf("Invalid brand, got: %s, instead of: %s.", intents[0].BrandName, "TechGear")
	}
}

func TestEvaluateOneIntentPerSubscription(t *testing.T) {
	source := &stubSubscriptions{
		product: []subscription.Subscription{
			{Id: 3, UserId: 30, Type: subscription.TypeProduct, PriceThreshold: pricePtr("80")},
		},
		brand: []subscription.Subscription{
			{Id: 3, UserId: 30, Type: subscription.TypeProduct, PriceThreshold: pricePtr("80")},
		},
	}

	evaluator := scanner.NewEvaluator(source, noopLogger{})

	intents := evaluator.Evaluate(context.Background(), testProduct(), pricePtr("100"), price("75"), "USD")
	if len(intents) != 1 {
		t.Errorf("Invalid intents count, got: %d, instead of: %d.", len(intents), 1)
	}
}
