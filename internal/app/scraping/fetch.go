package scraping

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ka4en3/smartcatcher/internal/app/logger"
)

// FetchConfig tunes the shared HTTP engine.
type FetchConfig struct {
	UserAgent         string
	Timeout           time.Duration
	RequestDelay      time.Duration
	RetryAttempts     int
	RateLimitFallback time.Duration
}

type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Fetcher performs HTTP calls with politeness delay, exponential backoff and
// 429 handling. Shared by every adapter that talks to the network.
type Fetcher struct {
	client *http.Client
	config FetchConfig
	logger logger.LoggerInterface
	sleep  func(time.Duration)
}

func NewFetcher(config FetchConfig, logger logger.LoggerInterface) *Fetcher {
	if config.RetryAttempts < 1 {
		config.RetryAttempts = 1
	}

	if config.RateLimitFallback <= 0 {
		config.RateLimitFallback = 60 * time.Second
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
		logger: logger,
		sleep:  time.Sleep,
	}
}

// Get performs a GET with the retry policy and default headers.
func (f *Fetcher) Get(ctx context.Context, url string) (*RawResponse, error) {
	return f.Do(ctx, http.MethodGet, url, nil, nil)
}

// Do performs a request with the retry policy. Extra headers are applied on
// top of the defaults. On exhausting all attempts the last error is surfaced,
// never silently replaced by empty data.
func (f *Fetcher) Do(ctx context.Context, method string, requestUrl string, header http.Header, body []byte) (*RawResponse, error) {
	var lastErr error

	for attempt := 0; attempt < f.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			f.sleep(f.config.RequestDelay * (1 << (attempt - 1)))
		} else if f.config.RequestDelay > 0 {
			f.sleep(f.config.RequestDelay)
		}

		response, err := f.doOnce(ctx, method, requestUrl, header, body)
		if err != nil {
			lastErr = err
			f.logger.Println("Request attempt", attempt+1, "failed for", requestUrl, ":", err)
			continue
		}

		if response.StatusCode == http.StatusTooManyRequests {
			f.sleep(f.retryAfter(response))
			lastErr = &TransportError{Url: requestUrl, StatusCode: response.StatusCode}
			continue
		}

		if response.StatusCode < 200 || response.StatusCode > 299 {
			lastErr = &TransportError{Url: requestUrl, StatusCode: response.StatusCode}
			f.logger.Println("Request attempt", attempt+1, "failed for", requestUrl, ": status", response.StatusCode)
			continue
		}

		return response, nil
	}

	return nil, lastErr
}

// Perform single HTTP round trip.
func (f *Fetcher) doOnce(ctx context.Context, method string, requestUrl string, header http.Header, body []byte) (*RawResponse, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestUrl, bodyReader)
	if err != nil {
		return nil, &TransportError{Url: requestUrl, Err: err}
	}

	request.Header.Set("User-Agent", f.config.UserAgent)
	request.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	request.Header.Set("Accept-Language", "en-US,en;q=0.5")

	for key, values := range header {
		request.Header.Del(key)
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	response, err := f.client.Do(request)
	if err != nil {
		return nil, &TransportError{Url: requestUrl, Err: err}
	}

	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &TransportError{Url: requestUrl, Err: err}
	}

	return &RawResponse{
		StatusCode: response.StatusCode,
		Header:     response.Header,
		Body:       content,
	}, nil
}

// Honor Retry-After header on 429, fall back to fixed duration otherwise.
func (f *Fetcher) retryAfter(response *RawResponse) time.Duration {
	retryAfter := response.Header.Get("Retry-After")
	if retryAfter == "" {
		return f.config.RateLimitFallback
	}

	seconds, err := strconv.Atoi(retryAfter)
	if err != nil || seconds < 0 {
		return f.config.RateLimitFallback
	}

	return time.Duration(seconds) * time.Second
}
