package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ejezie/Enact-Pricing/internal/config"
	"github.com/ejezie/Enact-Pricing/internal/metrics"
)

// BrowserSource fetches result pages through a headless Chrome instance,
// for when eBay serves a shell page and renders listings client-side.
// The browser is started lazily on first use and torn down on Close.
type BrowserSource struct {
	cfg config.FetchConfig
	log *slog.Logger

	once        sync.Once
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
}

// NewBrowserSource builds a BrowserSource from fetch configuration.
func NewBrowserSource(cfg config.FetchConfig, log *slog.Logger) *BrowserSource {
	if log == nil {
		log = slog.Default()
	}
	return &BrowserSource{cfg: cfg, log: log}
}

func (s *BrowserSource) init() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(s.cfg.UserAgent),
	)
	if chromeBin := os.Getenv("CHROME_BIN"); chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	s.allocCtx, s.cancelAlloc = chromedp.NewExecAllocator(context.Background(), opts...)
}

// Fetch implements Source. Each fetch runs in its own tab so a wedged
// page cannot poison later fetches.
func (s *BrowserSource) Fetch(ctx context.Context, target string) (string, error) {
	s.once.Do(s.init)

	tabCtx, cancelTab := chromedp.NewContext(s.allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.cfg.Timeout)
	defer cancelTimeout()

	// Propagate caller cancellation into the tab.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	start := time.Now()
	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		metrics.FetchesTotal.WithLabelValues("browser", "error").Inc()
		return "", fmt.Errorf("rendering %s: %w", target, err)
	}

	metrics.FetchesTotal.WithLabelValues("browser", "ok").Inc()
	metrics.FetchDuration.WithLabelValues("browser").Observe(time.Since(start).Seconds())
	s.log.Debug("page rendered", "url", target, "bytes", len(html))
	return html, nil
}

// Close shuts down the browser process if it was started.
func (s *BrowserSource) Close() error {
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
	return nil
}
