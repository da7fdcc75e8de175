package helpers

import (
	"github.com/shopspring/decimal"
)

// Symbols for the currencies the scrapers know about.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"RUB": "₽",
}

// Get symbol for ISO currency code (empty string when unknown).
func CurrencySymbol(code string) string {
	return currencySymbols[code]
}

// Format price amount as string (e.g. 1299.5 USD to "$1299.50").
func FormatMoney(amount decimal.Decimal, currency string) string {
	symbol := CurrencySymbol(currency)
	if symbol == "" {
		return ConcatStrings(amount.StringFixed(2), " ", currency)
	}

	return ConcatStrings(symbol, amount.StringFixed(2))
}

// Compute price drop percentage between old and new price.
func DropPercent(oldPrice decimal.Decimal, newPrice decimal.Decimal) decimal.Decimal {
	if oldPrice.IsZero() {
		return decimal.Zero
	}

	return oldPrice.Sub(newPrice).Div(oldPrice).Mul(decimal.NewFromInt(100))
}
