// Package fetch retrieves eBay search result pages. Two backends are
// available: a plain HTTP client with retry and rate limiting, and a
// headless browser for pages that only render listings client-side.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/ejezie/Enact-Pricing/internal/config"
)

// Source retrieves the markup of one search results page.
type Source interface {
	io.Closer

	// Fetch returns the page markup for the given URL.
	Fetch(ctx context.Context, target string) (string, error)
}

// New selects a Source from configuration.
func New(cfg config.FetchConfig, log *slog.Logger) (Source, error) {
	switch cfg.Backend {
	case "http":
		return NewHTTPSource(cfg, log), nil
	case "browser":
		return NewBrowserSource(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown fetch backend %q", cfg.Backend)
	}
}

// SearchURL builds the search results URL for a term. Results are sorted
// by best match and the listing count per page is pinned so pagination
// behaves predictably.
func SearchURL(baseURL, term string) string {
	params := url.Values{}
	params.Set("_nkw", term)
	params.Set("_sop", "12") // best match
	params.Set("_ipg", "60")
	return baseURL + "?" + params.Encode()
}
