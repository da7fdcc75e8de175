package scraping

import (
	"fmt"
	"strings"
)

// Router maps a URL to the adapter that claims it. Resolution is first-match
// over a fixed, ordered adapter list; unsupported domains are a hard stop.
type Router struct {
	adapters []Adapter
}

func NewRouter(adapters ...Adapter) Router {
	return Router{
		adapters: adapters,
	}
}

// Resolve adapter for URL, checking adapters in registration order.
func (r *Router) Resolve(url string) (Adapter, error) {
	url = strings.ToLower(strings.TrimSpace(url))

	if url == "" {
		return nil, ErrEmptyUrl
	}

	for _, adapter := range r.adapters {
		if adapter.CanHandle(url) {
			return adapter, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNoAdapter, url)
}

// List names of registered adapters in resolution order.
func (r *Router) AdapterNames() []string {
	names := make([]string, len(r.adapters))
	for i, adapter := range r.adapters {
		names[i] = adapter.Name()
	}

	return names
}
