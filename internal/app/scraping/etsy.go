package scraping

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ka4en3/smartcatcher/internal/app/helpers"
	"github.com/ka4en3/smartcatcher/internal/app/logger"
)

const etsyDescriptionLimit = 200

type EtsyConfig struct {
	ApiKey  string
	BaseUrl string
}

// EtsyAdapter looks listings up through the Etsy Open API v3. Etsy returns
// prices in minor units together with a divisor.
type EtsyAdapter struct {
	fetcher *Fetcher
	config  EtsyConfig
	logger  logger.LoggerInterface
}

func NewEtsyAdapter(fetcher *Fetcher, config EtsyConfig, logger logger.LoggerInterface) *EtsyAdapter {
	return &EtsyAdapter{
		fetcher: fetcher,
		config:  config,
		logger:  logger,
	}
}

func (a *EtsyAdapter) Name() string {
	return "etsy"
}

func (a *EtsyAdapter) CanHandle(url string) bool {
	return strings.Contains(strings.ToLower(url), "etsy.com")
}

func (a *EtsyAdapter) Scrape(ctx context.Context, listingUrl string) (ScrapedListing, error) {
	listingId := a.ExtractListingId(listingUrl)
	if listingId == "" {
		return ScrapedListing{}, NewScrapeError(a.Name(), CauseParseFailure, errors.New("could not extract listing id from url"))
	}

	apiUrl := helpers.ConcatStrings(a.config.BaseUrl, "/application/listings/", listingId, "?includes=Images,Shop")

	header := http.Header{}
	header.Set("x-api-key", a.config.ApiKey)
	header.Set("Content-Type", "application/json")

	response, err := a.fetcher.Do(ctx, http.MethodGet, apiUrl, header, nil)
	if err != nil {
		var transportErr *TransportError
		if errors.As(err, &transportErr) && transportErr.StatusCode == http.StatusNotFound {
			return ScrapedListing{}, NewScrapeError(a.Name(), CauseNotFound, err)
		}

		return ScrapedListing{}, err
	}

	a.logRateLimit(response)

	return a.mapListing(listingId, response.Body)
}

// ExtractListingId pulls the listing ID out of an Etsy URL.
// Shape: https://www.etsy.com/listing/123456789/product-name
func (a *EtsyAdapter) ExtractListingId(listingUrl string) string {
	parsed, err := url.Parse(listingUrl)
	if err != nil {
		return ""
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "listing" && isDigits(parts[1]) {
		return parts[1]
	}

	return ""
}

// Map Open API payload into a listing.
func (a *EtsyAdapter) mapListing(listingId string, payload []byte) (ScrapedListing, error) {
	var item struct {
		Title string `json:"title"`
		Price struct {
			Amount       int64  `json:"amount"`
			Divisor      int64  `json:"divisor"`
			CurrencyCode string `json:"currency_code"`
		} `json:"price"`
		Shop struct {
			ShopName string `json:"shop_name"`
		} `json:"shop"`
		Images []struct {
			Url570xN     string `json:"url_570xN"`
			UrlFullxFull string `json:"url_fullxfull"`
		} `json:"images"`
		Description string `json:"description"`
	}

	if err := json.Unmarshal(payload, &item); err != nil {
		return ScrapedListing{}, NewScrapeError(a.Name(), CauseParseFailure, err)
	}

	if item.Title == "" {
		return ScrapedListing{}, NewScrapeError(a.Name(), CauseParseFailure, errors.New("listing payload has no title"))
	}

	listing := ScrapedListing{
		Title:      item.Title,
		Currency:   "USD",
		Brand:      item.Shop.ShopName,
		ExternalId: listingId,
	}

	if item.Price.Amount > 0 {
		divisor := item.Price.Divisor
		if divisor == 0 {
			divisor = 100
		}

		price := decimal.NewFromInt(item.Price.Amount).Div(decimal.NewFromInt(divisor))
		listing.Price = &price
	}

	if item.Price.CurrencyCode != "" {
		listing.Currency = item.Price.CurrencyCode
	}

	if len(item.Images) > 0 {
		listing.ImageUrl = item.Images[0].Url570xN
		if listing.ImageUrl == "" {
			listing.ImageUrl = item.Images[0].UrlFullxFull
		}
	}

	if item.Description != "" {
		listing.Description = helpers.Truncate(item.Description, etsyDescriptionLimit)
	}

	return listing, nil
}

func (a *EtsyAdapter) logRateLimit(response *RawResponse) {
	remaining := response.Header.Get("X-RateLimit-Remaining")
	if remaining != "" {
		a.logger.Println("Etsy API rate limit remaining:", remaining, "resets at:", response.Header.Get("X-RateLimit-Reset"))
	}
}
