package scraping

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/ka4en3/smartcatcher/internal/app/logger"
)

// Selector candidates per field, first non-empty match wins. The test site has
// several layouts, so each field carries an ordered fallback list.
var (
	webscraperTitleSelectors = []string{"h1", ".product-title", ".title", "h2", ".name"}
	webscraperPriceSelectors = []string{".price", ".product-price", "[class*='price']", ".cost", ".amount"}
	webscraperBrandSelectors = []string{".brand", ".manufacturer", "[class*='brand']"}
	webscraperImageSelectors = []string{".product-image img", ".image img", "img[src*='product']", ".product img", "img"}
)

// WebScraperIOAdapter scrapes the webscraper.io practice site over plain HTML.
type WebScraperIOAdapter struct {
	fetcher *Fetcher
	logger  logger.LoggerInterface
}

func NewWebScraperIOAdapter(fetcher *Fetcher, logger logger.LoggerInterface) *WebScraperIOAdapter {
	return &WebScraperIOAdapter{
		fetcher: fetcher,
		logger:  logger,
	}
}

func (a *WebScraperIOAdapter) Name() string {
	return "webscraper_io"
}

func (a *WebScraperIOAdapter) CanHandle(url string) bool {
	return strings.Contains(strings.ToLower(url), "webscraper.io")
}

func (a *WebScraperIOAdapter) Scrape(ctx context.Context, pageUrl string) (ScrapedListing, error) {
	// the site exists for scraping practice, robots is logged only
	if !a.fetcher.RobotsAllowed(ctx, pageUrl) {
		a.logger.Println("WARNING! robots.txt disallows", pageUrl)
	}

	response, err := a.fetcher.Get(ctx, pageUrl)
	if err != nil {
		return ScrapedListing{}, err
	}

	document, err := a.parseDocument(response)
	if err != nil {
		return ScrapedListing{}, NewScrapeError(a.Name(), CauseParseFailure, err)
	}

	listing := ScrapedListing{
		Currency:   "USD",
		ExternalId: lastPathSegment(pageUrl),
	}

	listing.Title = firstSelectorText(document, webscraperTitleSelectors)
	if listing.Title == "" {
		listing.Title = "Unknown Product"
	}

	for _, selector := range webscraperPriceSelectors {
		priceText := strings.TrimSpace(document.Find(selector).First().Text())
		if priceText == "" || !containsDigit(priceText) {
			continue
		}

		if price, currency := ParsePrice(priceText); price != nil {
			listing.Price = price
			listing.Currency = currency
			break
		}
	}

	listing.Brand = firstSelectorText(document, webscraperBrandSelectors)
	listing.ImageUrl = a.findImage(document, pageUrl)

	return listing, nil
}

// Decode response body honoring the declared charset before parsing.
func (a *WebScraperIOAdapter) parseDocument(response *RawResponse) (*goquery.Document, error) {
	reader, err := charset.NewReader(bytes.NewReader(response.Body), response.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	return goquery.NewDocumentFromReader(reader)
}

func (a *WebScraperIOAdapter) findImage(document *goquery.Document, pageUrl string) string {
	for _, selector := range webscraperImageSelectors {
		src, exists := document.Find(selector).First().Attr("src")
		if !exists || src == "" {
			continue
		}

		return resolveImageUrl(pageUrl, src)
	}

	return ""
}

// First selector yielding a non-empty text match wins.
func firstSelectorText(document *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		text := strings.TrimSpace(document.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}

	return ""
}

// Resolve relative image URL to absolute against the page URL.
func resolveImageUrl(pageUrl string, imageUrl string) string {
	if strings.HasPrefix(imageUrl, "http://") || strings.HasPrefix(imageUrl, "https://") {
		return imageUrl
	}

	base, err := url.Parse(pageUrl)
	if err != nil {
		return imageUrl
	}

	relative, err := url.Parse(imageUrl)
	if err != nil {
		return imageUrl
	}

	return base.ResolveReference(relative).String()
}

func containsDigit(text string) bool {
	for _, char := range text {
		if char >= '0' && char <= '9' {
			return true
		}
	}

	return false
}

func lastPathSegment(rawUrl string) string {
	trimmed := strings.TrimSuffix(rawUrl, "/")
	index := strings.LastIndex(trimmed, "/")
	if index < 0 {
		return ""
	}

	return trimmed[index+1:]
}
