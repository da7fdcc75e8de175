package config

import (
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/ka4en3/smartcatcher/internal/app/helpers"
)

// Config holds everything the worker reads from the environment.
type Config struct {
	DatabaseDsn string

	TelegramBotToken string

	EbayClientId     string
	EbayClientSecret string
	EbayBaseUrl      string

	EtsyApiKey  string
	EtsyBaseUrl string

	ScraperUserAgent     string
	ScraperRequestDelay  time.Duration
	ScraperRetryAttempts int
	ScraperTimeout       time.Duration
	RateLimitFallback    time.Duration

	ScanIntervalMinutes int
	ScanBatchLimit      int
}

const (
	defaultUserAgent     = "SmartCatcher/1.0 (+https://example.com/bot)"
	defaultRequestDelay  = time.Second
	defaultRetryAttempts = 3
	defaultTimeout       = 30 * time.Second
	defaultRateFallback  = 60 * time.Second
	defaultScanInterval  = 60
	defaultBatchLimit    = 50

	ebaySandboxUrl    = "https://api.sandbox.ebay.com"
	ebayProductionUrl = "https://api.ebay.com"
	etsyOpenApiUrl    = "https://openapi.etsy.com/v3"
)

// Load configuration from environment variables.
func Load() Config {
	cfg := Config{
		DatabaseDsn:          getDsn(),
		TelegramBotToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		EbayClientId:         os.Getenv("EBAY_CLIENT_ID"),
		EbayClientSecret:     os.Getenv("EBAY_CLIENT_SECRET"),
		EbayBaseUrl:          ebaySandboxUrl,
		EtsyApiKey:           os.Getenv("ETSY_API_KEY"),
		EtsyBaseUrl:          etsyOpenApiUrl,
		ScraperUserAgent:     defaultUserAgent,
		ScraperRequestDelay:  defaultRequestDelay,
		ScraperRetryAttempts: defaultRetryAttempts,
		ScraperTimeout:       defaultTimeout,
		RateLimitFallback:    defaultRateFallback,
		ScanIntervalMinutes:  defaultScanInterval,
		ScanBatchLimit:       defaultBatchLimit,
	}

	if os.Getenv("EBAY_ENVIRONMENT") == "production" {
		cfg.EbayBaseUrl = ebayProductionUrl
	}

	if userAgent := os.Getenv("SCRAPER_USER_AGENT"); userAgent != "" {
		cfg.ScraperUserAgent = userAgent
	}

	if delay := envSeconds("SCRAPER_REQUEST_DELAY"); delay > 0 {
		cfg.ScraperRequestDelay = delay
	}

	if attempts := envInt("SCRAPER_RETRY_ATTEMPTS"); attempts > 0 {
		cfg.ScraperRetryAttempts = attempts
	}

	if timeout := envSeconds("SCRAPER_TIMEOUT"); timeout > 0 {
		cfg.ScraperTimeout = timeout
	}

	if interval := envInt("PRICE_CHECK_INTERVAL_MINUTES"); interval > 0 {
		cfg.ScanIntervalMinutes = interval
	}

	if limit := envInt("SCAN_BATCH_LIMIT"); limit > 0 {
		cfg.ScanBatchLimit = limit
	}

	return cfg
}

func getDsn() string {
	return helpers.ConcatStrings(
		"postgres://",
		os.Getenv("DB_USERNAME"), ":", url.QueryEscape(os.Getenv("DB_PASSWORD")),
		"@", os.Getenv("DB_HOST"), ":", os.Getenv("DB_PORT"),
		"/", os.Getenv("DB_DATABASE"),
	)
}

func envInt(name string) int {
	value, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return 0
	}

	return value
}

func envSeconds(name string) time.Duration {
	seconds, err := strconv.ParseFloat(os.Getenv(name), 64)
	if err != nil || seconds <= 0 {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}
