package scraping

import (
	"context"
	_ "embed"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

//go:embed demo_fixture.html
var demoFixture string

// DemoAdapter serves a canned product page. It keeps integration tests and
// demo flows working without any live network dependency.
type DemoAdapter struct{}

func NewDemoAdapter() *DemoAdapter {
	return &DemoAdapter{}
}

func (a *DemoAdapter) Name() string {
	return "demo"
}

func (a *DemoAdapter) CanHandle(url string) bool {
	url = strings.ToLower(url)

	return strings.HasPrefix(url, "demo://") || strings.Contains(url, "demo")
}

func (a *DemoAdapter) Scrape(ctx context.Context, url string) (ScrapedListing, error) {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(demoFixture))
	if err != nil {
		return ScrapedListing{}, NewScrapeError(a.Name(), CauseParseFailure, err)
	}

	listing := ScrapedListing{
		Currency:   "USD",
		ExternalId: "demo-123",
	}

	listing.Title = strings.TrimSpace(document.Find("h1.product-title").First().Text())
	if listing.Title == "" {
		listing.Title = strings.TrimSpace(document.Find("h1").First().Text())
	}
	if listing.Title == "" {
		listing.Title = "Demo Product"
	}

	priceText := strings.TrimSpace(document.Find(".price, .product-price").First().Text())
	if price, currency := ParsePrice(priceText); price != nil {
		listing.Price = price
		listing.Currency = currency
	}

	listing.Brand = strings.TrimSpace(document.Find(".brand, .product-brand").First().Text())
	if listing.Brand == "" {
		listing.Brand = "Demo Brand"
	}

	if src, exists := document.Find("img.product-image, img.main-image, img").First().Attr("src"); exists {
		listing.ImageUrl = src
	}

	listing.Description = strings.TrimSpace(document.Find(".description").First().Text())

	return listing, nil
}
