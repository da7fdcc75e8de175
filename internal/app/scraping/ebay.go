package scraping

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ka4en3/smartcatcher/internal/app/helpers"
	"github.com/ka4en3/smartcatcher/internal/app/logger"
)

// Refresh the bearer token this long before its actual expiry.
const ebayTokenSafetyMargin = 5 * time.Minute

// eBay item IDs are numeric path segments of at least this length.
const ebayItemIdMinLength = 9

type EbayConfig struct {
	ClientId     string
	ClientSecret string
	BaseUrl      string
}

// EbayAdapter looks items up through the eBay Browse API. The only state it
// owns is the cached OAuth bearer token; refresh is serialized with a mutex so
// the adapter stays safe when shared across scan streams.
type EbayAdapter struct {
	fetcher *Fetcher
	config  EbayConfig
	logger  logger.LoggerInterface

	tokenMutex  sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewEbayAdapter(fetcher *Fetcher, config EbayConfig, logger logger.LoggerInterface) *EbayAdapter {
	return &EbayAdapter{
		fetcher: fetcher,
		config:  config,
		logger:  logger,
	}
}

func (a *EbayAdapter) Name() string {
	return "ebay"
}

func (a *EbayAdapter) CanHandle(url string) bool {
	url = strings.ToLower(url)

	return strings.Contains(url, "ebay.com") || strings.Contains(url, "ebay.")
}

func (a *EbayAdapter) Scrape(ctx context.Context, itemUrl string) (ScrapedListing, error) {
	itemId := a.ExtractItemId(itemUrl)
	if itemId == "" {
		return ScrapedListing{}, NewScrapeError(a.Name(), CauseParseFailure, errors.New("could not extract item id from url"))
	}

	accessToken, err := a.getValidToken(ctx)
	if err != nil {
		return ScrapedListing{}, NewScrapeError(a.Name(), CauseAuthFailure, err)
	}

	apiUrl := helpers.ConcatStrings(a.config.BaseUrl, "/buy/browse/v1/item/", itemId)

	header := http.Header{}
	header.Set("Authorization", helpers.ConcatStrings("Bearer ", accessToken))
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

	return a.mapItem(itemId, response.Body)
}

// ExtractItemId pulls the numeric item ID out of an eBay URL. Supported
// shapes: /itm/123456789, /itm/product-name/123456789, ?item=123456789.
func (a *EbayAdapter) ExtractItemId(itemUrl string) string {
	parsed, err := url.Parse(itemUrl)
	if err != nil {
		return ""
	}

	for _, part := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		if len(part) >= ebayItemIdMinLength && isDigits(part) {
			return part
		}
	}

	if item := parsed.Query().Get("item"); item != "" {
		return item
	}

	return ""
}

// Map Browse API payload into a listing.
func (a *EbayAdapter) mapItem(itemId string, payload []byte) (ScrapedListing, error) {
	var item struct {
		Title string `json:"title"`
		Price struct {
			Value    string `json:"value"`
			Currency string `json:"currency"`
		} `json:"price"`
		LocalizedAspects []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"localizedAspects"`
		Image struct {
			ImageUrl string `json:"imageUrl"`
		} `json:"image"`
		AdditionalImages []struct {
			ImageUrl string `json:"imageUrl"`
		} `json:"additionalImages"`
	}

	if err := json.Unmarshal(payload, &item); err != nil {
		return ScrapedListing{}, NewScrapeError(a.Name(), CauseParseFailure, err)
	}

	if item.Title == "" {
		return ScrapedListing{}, NewScrapeError(a.Name(), CauseParseFailure, errors.New("item payload has no title"))
	}

	listing := ScrapedListing{
		Title:      item.Title,
		Currency:   "USD",
		ExternalId: itemId,
	}

	if item.Price.Value != "" {
		if price, err := decimal.NewFromString(item.Price.Value); err == nil {
			listing.Price = &price
		}
	}

	if item.Price.Currency != "" {
		listing.Currency = item.Price.Currency
	}

	for _, aspect := range item.LocalizedAspects {
		switch strings.ToLower(aspect.Name) {
		case "brand", "marca", "marque":
			listing.Brand = aspect.Value
		}

		if listing.Brand != "" {
			break
		}
	}

	listing.ImageUrl = item.Image.ImageUrl
	if listing.ImageUrl == "" && len(item.AdditionalImages) > 0 {
		listing.ImageUrl = item.AdditionalImages[0].ImageUrl
	}

	return listing, nil
}

// Return cached bearer token, refreshing when within the safety margin.
func (a *EbayAdapter) getValidToken(ctx context.Context) (string, error) {
	a.tokenMutex.Lock()
	defer a.tokenMutex.Unlock()

	if a.accessToken != "" && time.Now().Before(a.tokenExpiry) {
		return a.accessToken, nil
	}

	tokenUrl := helpers.ConcatStrings(a.config.BaseUrl, "/identity/v1/oauth2/token")

	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	header.Set("Authorization", helpers.ConcatStrings("Basic ", a.basicAuth()))

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "https://api.ebay.com/oauth/api_scope")

	response, err := a.fetcher.Do(ctx, http.MethodPost, tokenUrl, header, []byte(form.Encode()))
	if err != nil {
		return "", err
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.Unmarshal(response.Body, &token); err != nil {
		return "", err
	}

	if token.AccessToken == "" {
		return "", errors.New("token response has no access_token")
	}

	a.accessToken = token.AccessToken
	a.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - ebayTokenSafetyMargin)

	return a.accessToken, nil
}

func (a *EbayAdapter) basicAuth() string {
	credentials := helpers.ConcatStrings(a.config.ClientId, ":", a.config.ClientSecret)

	return base64.StdEncoding.EncodeToString([]byte(credentials))
}

func (a *EbayAdapter) logRateLimit(response *RawResponse) {
	remaining := response.Header.Get("X-RateLimit-Remaining")
	if remaining != "" {
		a.logger.Println("eBay API rate limit remaining:", remaining)
	}
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}

	for _, char := range value {
		if char < '0' || char > '9' {
			return false
		}
	}

	return true
}
