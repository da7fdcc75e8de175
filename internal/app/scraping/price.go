package scraping

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Ordered symbol table: the first symbol found anywhere in the text wins.
var priceCurrencies = []struct {
	Symbol string
	Code   string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₽", "RUB"},
}

var priceNumberPattern = regexp.MustCompile(`\d+\.?\d*`)

// ParsePrice extracts amount and ISO currency code from free-form price text.
// A missing number is a normal outcome (nil amount), never an error; currency
// defaults to USD when no known symbol is present.
func ParsePrice(text string) (*decimal.Decimal, string) {
	currency := "USD"

	if text == "" {
		return nil, currency
	}

	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, ",", "")
	text = strings.ReplaceAll(text, "\n", " ")

	for _, entry := range priceCurrencies {
		if strings.Contains(text, entry.Symbol) {
			currency = entry.Code
			text = strings.TrimSpace(strings.ReplaceAll(text, entry.Symbol, ""))
			break
		}
	}

	match := priceNumberPattern.FindString(text)
	if match == "" {
		return nil, currency
	}

	amount, err := decimal.NewFromString(match)
	if err != nil {
		return nil, currency
	}

	return &amount, currency
}
