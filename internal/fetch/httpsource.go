package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/ejezie/Enact-Pricing/internal/config"
	"github.com/ejezie/Enact-Pricing/internal/metrics"
)

// HTTPSource fetches result pages with a plain HTTP client. Requests go
// through a token bucket limiter first; transient upstream failures (429
// and 5xx) are retried with exponential backoff.
type HTTPSource struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	retries   int
	log       *slog.Logger
}

// NewHTTPSource builds an HTTPSource from fetch configuration.
func NewHTTPSource(cfg config.FetchConfig, log *slog.Logger) *HTTPSource {
	if log == nil {
		log = slog.Default()
	}
	return &HTTPSource{
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst),
		userAgent: cfg.UserAgent,
		retries:   cfg.Retries,
		log:       log,
	}
}

// Fetch implements Source. Retries cover network errors and retryable
// status codes; a 4xx other than 429 fails immediately.
func (s *HTTPSource) Fetch(ctx context.Context, target string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.retries)),
		ctx,
	)

	var body string
	attempt := 0
	operation := func() error {
		attempt++
		var err error
		body, err = s.fetchOnce(ctx, target)
		if err != nil {
			s.log.Warn("page fetch attempt failed",
				"attempt", attempt,
				"url", target,
				"error", err,
			)
		}
		return err
	}

	if err := backoff.Retry(operation, policy); err != nil {
		metrics.FetchesTotal.WithLabelValues("http", "error").Inc()
		return "", fmt.Errorf("fetching %s: %w", target, err)
	}

	metrics.FetchesTotal.WithLabelValues("http", "ok").Inc()
	return body, nil
}

func (s *HTTPSource) fetchOnce(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("creating HTTP request: %w", err))
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		metrics.FetchDuration.WithLabelValues("http").Observe(time.Since(start).Seconds())
		return string(body), nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", fmt.Errorf("upstream status %d", resp.StatusCode)
	default:
		return "", backoff.Permanent(fmt.Errorf("upstream status %d", resp.StatusCode))
	}
}

// Close implements Source. The HTTP client holds no resources that need
// explicit teardown.
func (s *HTTPSource) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
