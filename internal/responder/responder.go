// Package responder answers free-form questions about a completed
// analysis run by handing the delegate a rendered market summary.
package responder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ejezie/Enact-Pricing/pkg/extract"
	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// Fixed user-facing messages. Delegate failures never surface raw errors
// to the caller.
const (
	NoDataMessage  = "Please analyze some market data first before asking questions."
	FailureMessage = "I apologize, but I encountered an error while analyzing the data. Please try again."
)

// maxSummaryBrands caps how many brands the rendered summary names.
const maxSummaryBrands = 10

// Responder answers questions over run results.
type Responder struct {
	adapter *extract.Adapter
	log     *slog.Logger
}

// New builds a Responder around the delegate adapter.
func New(adapter *extract.Adapter, log *slog.Logger) *Responder {
	if log == nil {
		log = slog.Default()
	}
	return &Responder{adapter: adapter, log: log}
}

// Answer responds to a question about a run. A nil or empty result gets
// the fixed no-data message; a delegate failure gets the fixed apology.
func (r *Responder) Answer(ctx context.Context, question string, result *domain.RunResult) string {
	if result == nil || len(result.Records) == 0 {
		return NoDataMessage
	}
	if strings.TrimSpace(question) == "" {
		return NoDataMessage
	}

	answer, err := r.adapter.Answer(ctx, Summary(result), question)
	if err != nil {
		r.log.Warn("delegate answer failed", "run_id", result.RunID, "error", err)
		return FailureMessage
	}
	return strings.TrimSpace(answer)
}

// Summary renders a compact textual view of a run for the delegate
// prompt. All statistics come pre-computed from the analysis so the
// delegate only has to phrase, never calculate.
func Summary(result *domain.RunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Search term: %s\n", result.SearchTerm)
	fmt.Fprintf(&b, "Products analyzed: %d\n", len(result.Records))

	a := result.Analysis
	if a.Empty() {
		b.WriteString("No listings had a parseable price.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Average price: £%.2f\n", a.Mean)
	fmt.Fprintf(&b, "Median price: £%.2f\n", a.Median)
	fmt.Fprintf(&b, "Price range: £%.2f - £%.2f\n", a.Min, a.Max)
	fmt.Fprintf(&b, "Budget segment: below £%.2f\n", a.Segments.Budget)
	fmt.Fprintf(&b, "Mid-range: £%.2f\n", a.Segments.Mid)
	fmt.Fprintf(&b, "Premium segment: above £%.2f\n", a.Segments.Premium)

	if len(a.BrandOrder) > 0 {
		names := a.BrandOrder
		if len(names) > maxSummaryBrands {
			names = names[:maxSummaryBrands]
		}
		fmt.Fprintf(&b, "Brands: %s\n", strings.Join(names, ", "))
	}

	return b.String()
}
