package scraping_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ka4en3/smartcatcher/internal/app/scraping"
)

func newEbayAdapter(baseUrl string) *scraping.EbayAdapter {
	fetcher := scraping.NewFetcher(scraping.FetchConfig{
		UserAgent:     "test-agent",
		RetryAttempts: 1,
	}, noopLogger{})

	return scraping.NewEbayAdapter(fetcher, scraping.EbayConfig{
		ClientId:     "client-id",
		ClientSecret: "client-secret",
		BaseUrl:      baseUrl,
	}, noopLogger{})
}

func TestEbayExtractItemId(t *testing.T) {
	adapter := newEbayAdapter("")

	cases := map[string]string{
		"https://www.ebay.com/itm/123456789012":              "123456789012",
		"https://www.ebay.com/itm/cool-product/987654321":    "987654321",
		"https://www.ebay.com/p/something?item=334455667788": "334455667788",
		"https://www.ebay.com/itm/12345":                     "",
		"https://www.ebay.com/deals":                         "",
	}

	for itemUrl, expected := range cases {
		result := adapter.ExtractItemId(itemUrl)
		if result != expected {
			t.Errorf("Invalid item id for %s, got: %s, instead of: %s.", itemUrl, result, expected)
		}
	}
}

func TestEbayScrape(t *testing.T) {
	tokenRequests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/identity/v1/oauth2/token":
			tokenRequests++

			if r.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			w.Write([]byte(`{"access_token": "test-token", "expires_in": 7200}`))
		case "/buy/browse/v1/item/123456789":
			if r.Header.Get("Authorization") != "Bearer test-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			w.Write([]byte(`{
				"title": "Wireless Headphones",
				"price": {"value": "89.99", "currency": "USD"},
				"localizedAspects": [
					{"name": "Color", "value": "Black"},
					{"name": "Marca", "value": "AudioMax"}
				],
				"image": {"imageUrl": "https://img.example/main.jpg"}
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	adapter := newEbayAdapter(server.URL)

	listing, err := adapter.Scrape(context.Background(), "https://www.ebay.com/itm/123456789")
	if err != nil {
		t.Fatalf("Invalid result, got error: %v.", err)
	}

	if listing.Title != "Wireless Headphones" {
		t.Errorf("Invalid title, got: %s, instead of: %s.", listing.Title, "Wireless Headphones")
	}

	if listing.Price == nil || !listing.Price.Equal(priceOf(t, "89.99")) {
		t.Errorf("Invalid price, got: %v, instead of: %s.", listing.Price, "89.99")
	}

	if listing.Brand != "AudioMax" {
		t.Errorf("Invalid brand, got: %s, instead of: %s.", listing.Brand, "AudioMax")
	}

	if listing.ImageUrl != "https://img.example/main.jpg" {
		t.Errorf("Invalid image, got: %s.", listing.ImageUrl)
	}

	if listing.ExternalId != "123456789" {
		t.Errorf("Invalid external id, got: %s, instead of: %s.", listing.ExternalId, "123456789")
	}

	// Second scrape must reuse the cached token.
	if _, err := adapter.Scrape(context.Background(), "https://www.ebay.com/itm/123456789"); err != nil {
		t.Fatalf("Invalid result, got error: %v.", err)
	}

	if tokenRequests != 1 {
		t.Errorf("Invalid token requests, got: %d, instead of: %d.", tokenRequests, 1)
	}
}

func TestEbayScrapeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/identity/v1/oauth2/token" {
			w.Write([]byte(`{"access_token": "test-token", "expires_in": 7200}`))
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	adapter := newEbayAdapter(server.URL)

	_, err := adapter.Scrape(context.Background(), "https://www.ebay.com/itm/123456789")
	if !scraping.IsScrapeCause(err, scraping.CauseNotFound) {
		t.Errorf("Invalid error, got: %v.", err)
	}
}

func TestEbayScrapeAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := newEbayAdapter(server.URL)

	_, err := adapter.Scrape(context.Background(), "https://www.ebay.com/itm/123456789")
	if !scraping.IsScrapeCause(err, scraping.CauseAuthFailure) {
		t.Errorf("Invalid error, got: %v.", err)
	}
}

func TestEbayScrapeUnparseableUrl(t *testing.T) {
	adapter := newEbayAdapter("")

	_, err := adapter.Scrape(context.Background(), "https://www.ebay.com/deals")
	if !scraping.IsScrapeCause(err, scraping.CauseParseFailure) {
		t.Errorf("Invalid error, got: %v.", err)
	}
}
