package scraping

import (
	"context"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"

	"github.com/ka4en3/smartcatcher/internal/app/helpers"
)

// RobotsAllowed checks robots.txt for the target host. Any failure to fetch or
// parse the policy defaults to "allowed" (fail open) with a warning, so a
// broken robots endpoint never blocks scraping.
func (f *Fetcher) RobotsAllowed(ctx context.Context, rawUrl string) bool {
	parsed, err := url.Parse(rawUrl)
	if err != nil {
		f.logger.Println("WARNING! Failed to check robots.txt for", rawUrl, ":", err)
		return true
	}

	robotsUrl := helpers.ConcatStrings(parsed.Scheme, "://", parsed.Host, "/robots.txt")

	response, err := f.doOnce(ctx, http.MethodGet, robotsUrl, nil, nil)
	if err != nil {
		f.logger.Println("WARNING! Failed to check robots.txt for", rawUrl, ":", err)
		return true
	}

	if response.StatusCode != http.StatusOK {
		// no robots.txt means scraping is allowed
		return true
	}

	robots, err := robotstxt.FromBytes(response.Body)
	if err != nil {
		f.logger.Println("WARNING! Failed to parse robots.txt for", rawUrl, ":", err)
		return true
	}

	return robots.TestAgent(parsed.Path, f.config.UserAgent)
}
