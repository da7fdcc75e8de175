package helpers_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ka4en3/smartcatcher/internal/app/helpers"
)

func TestCurrencySymbol(t *testing.T) {
	result := helpers.CurrencySymbol("EUR")
	if result != "€" {
		t.Errorf("Invalid result, got: %s, instead of: %s.", result, "€")
	}

	result = helpers.CurrencySymbol("XXX")
	if result != "" {
		t.Errorf("Invalid result, got: %s, instead of empty string.", result)
	}
}

func TestFormatMoney(t *testing.T) {
	price := decimal.NewFromFloat(1299.5)
	target := "$1299.50"

	result := helpers.FormatMoney(price, "USD")
	if result != target {
		t.Errorf("Invalid result, got: %s, instead of: %s.", result, target)
	}

	target = "1299.50 CHF"

	result = helpers.FormatMoney(price, "CHF")
	if result != target {
		t.Errorf("Invalid result, got: %s, instead of: %s.", result, target)
	}
}

func TestDropPercent(t *testing.T) {
	oldPrice := decimal.NewFromInt(100)
	newPrice := decimal.NewFromInt(75)
	target := decimal.NewFromInt(25)

	result := helpers.DropPercent(oldPrice, newPrice)
	if !result.Equal(target) {
		t.Errorf("Invalid result, got: %s, instead of: %s.", result, target)
	}

	result = helpers.DropPercent(decimal.Zero, newPrice)
	if !result.IsZero() {
		t.Errorf("Invalid result, got: %s, instead of zero.", result)
	}
}
