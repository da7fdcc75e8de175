package scraping

import (
	"errors"
	"fmt"
)

var ErrEmptyUrl = errors.New("empty product url")
var ErrNoAdapter = errors.New("no adapter for url")

type ScrapeCause int

const (
	CauseNotFound ScrapeCause = iota
	CauseParseFailure
	CauseAuthFailure
)

func (c ScrapeCause) String() string {
	switch c {
	case CauseNotFound:
		return "not found"
	case CauseParseFailure:
		return "parse failure"
	case CauseAuthFailure:
		return "auth failure"
	}

	return "unknown"
}

// ScrapeError is a per-item extraction failure. The orchestrator catches it,
// logs and moves on to the next product.
type ScrapeError struct {
	Source string
	Cause  ScrapeCause
	Err    error
}

func (e *ScrapeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Cause)
	}

	return fmt.Sprintf("%s: %s: %v", e.Source, e.Cause, e.Err)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

func NewScrapeError(source string, cause ScrapeCause, err error) *ScrapeError {
	return &ScrapeError{
		Source: source,
		Cause:  cause,
		Err:    err,
	}
}

// Check if error is a ScrapeError with given cause.
func IsScrapeCause(err error, cause ScrapeCause) bool {
	var scrapeErr *ScrapeError
	if !errors.As(err, &scrapeErr) {
		return false
	}

	return scrapeErr.Cause == cause
}

// TransportError is a network or HTTP failure that survived all retries.
type TransportError struct {
	Url        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: status %d", e.Url, e.StatusCode)
	}

	return fmt.Sprintf("fetch %s: %v", e.Url, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
