// Package pipeline orchestrates a full analysis run: fetch the search
// results page, extract listing records, normalize prices, and compute
// market statistics with pricing recommendations.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ejezie/Enact-Pricing/internal/config"
	"github.com/ejezie/Enact-Pricing/internal/fetch"
	"github.com/ejezie/Enact-Pricing/internal/metrics"
	"github.com/ejezie/Enact-Pricing/pkg/analyze"
	"github.com/ejezie/Enact-Pricing/pkg/extract"
	"github.com/ejezie/Enact-Pricing/pkg/price"
	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// Runner executes analysis runs against a page source and a delegate
// adapter. Both are injected so tests can run without network or model.
type Runner struct {
	source  fetch.Source
	adapter *extract.Adapter
	cfg     config.ExtractionConfig
	baseURL string
	log     *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the Runner's logger.
func WithLogger(log *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRunner builds a Runner. The adapter may be nil when the extraction
// mode is markup; auto and delegate modes require it.
func NewRunner(source fetch.Source, adapter *extract.Adapter, cfg config.ExtractionConfig, baseURL string, opts ...RunnerOption) *Runner {
	r := &Runner{
		source:  source,
		adapter: adapter,
		cfg:     cfg,
		baseURL: baseURL,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one full analysis for a search term. Fetch failures and
// per-record problems degrade the run rather than failing it, so a dead
// upstream yields an empty snapshot and a page with some malformed
// listings still produces an analysis.
func (r *Runner) Run(ctx context.Context, term string) (*domain.RunResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("empty search term")
	}

	start := time.Now()
	result := &domain.RunResult{
		RunID:      uuid.NewString(),
		SearchTerm: term,
		CreatedAt:  start.UTC(),
	}

	target := fetch.SearchURL(r.baseURL, term)
	r.log.Info("starting analysis run", "run_id", result.RunID, "term", term, "url", target)

	page, err := r.source.Fetch(ctx, target)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// A dead upstream degrades the run to an empty snapshot instead
		// of failing it; the meta flags tell the caller what happened.
		r.log.Warn("results page unavailable", "run_id", result.RunID, "error", err)
		metrics.RunsTotal.WithLabelValues("fetch_error").Inc()
		result.Analysis = analyze.Analyze(nil)
		result.Recommendations = analyze.Recommendations(result.Analysis)
		result.Meta.Duration = time.Since(start)
		return result, nil
	}
	result.Meta.FetchOK = true

	records, skipped, meta, err := r.extractRecords(ctx, page, term)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("extract_error").Inc()
		return nil, err
	}
	result.Meta.Extracted = len(records)
	result.Meta.Skipped = skipped
	result.Meta.ChunksTotal = meta.ChunksTotal
	result.Meta.ChunkFailures = meta.Failures

	result.Records = normalizeRecords(records)
	result.Analysis = analyze.Analyze(result.Records)
	result.Recommendations = analyze.Recommendations(result.Analysis)

	result.Meta.Duration = time.Since(start)
	metrics.RunsTotal.WithLabelValues("ok").Inc()
	metrics.RunDuration.Observe(result.Meta.Duration.Seconds())
	metrics.PricedRecords.Observe(float64(result.Analysis.PricedCount))

	r.log.Info("analysis run complete",
		"run_id", result.RunID,
		"records", len(result.Records),
		"priced", result.Analysis.PricedCount,
		"chunk_failures", result.Meta.ChunkFailures,
		"duration", result.Meta.Duration,
	)
	return result, nil
}

// extractRecords picks the extraction path for the configured mode. In
// auto mode the markup path runs first and the delegate only takes over
// when the markup yields nothing, which keeps runs cheap on well-formed
// pages.
func (r *Runner) extractRecords(ctx context.Context, page, term string) ([]domain.Record, int, extract.ExtractResult, error) {
	var empty extract.ExtractResult

	mode := r.cfg.Mode
	if mode == "markup" || mode == "auto" {
		records, skipped := extract.Listings(page, r.cfg.MaxResults, r.log)
		if len(records) > 0 || mode == "markup" {
			metrics.RecordsExtractedTotal.WithLabelValues("markup").Add(float64(len(records)))
			return records, skipped, empty, nil
		}
		r.log.Info("markup extraction found no listings, falling back to delegate")
	}

	if r.adapter == nil {
		return nil, 0, empty, fmt.Errorf("delegate extraction required but no backend configured")
	}

	body := extract.CleanBody(page)
	chunks := extract.SplitChunks(body, r.cfg.MaxChunkChars)

	instruction := fmt.Sprintf("Extract the product listings for the search %q.", term)
	batchStart := time.Now()
	res, err := r.adapter.ExtractAll(ctx, chunks, instruction)
	if err != nil {
		return nil, 0, empty, fmt.Errorf("delegate extraction: %w", err)
	}
	metrics.ExtractionDuration.Observe(time.Since(batchStart).Seconds())
	metrics.ChunkFailuresTotal.Add(float64(res.Failures))

	records := res.Records
	if len(records) > r.cfg.MaxResults {
		records = records[:r.cfg.MaxResults]
	}
	metrics.RecordsExtractedTotal.WithLabelValues("delegate").Add(float64(len(records)))
	return records, 0, *res, nil
}

// normalizeRecords attaches numeric prices and canonical conditions.
// Records whose price does not parse stay in the result set with a zero
// price so callers can still see them; only the statistics exclude them.
func normalizeRecords(records []domain.Record) []domain.NormalizedRecord {
	normalized := make([]domain.NormalizedRecord, 0, len(records))
	for _, rec := range records {
		if rec.Brand == "" {
			rec.Brand = domain.NotSpecified
		}
		amount, ok := price.Normalize(rec.PriceText)
		normalized = append(normalized, domain.NormalizedRecord{
			Record:       rec,
			NumericPrice: amount,
			Priced:       ok,
			Condition:    extract.NormalizeCondition(rec.ConditionText),
		})
	}
	return normalized
}
