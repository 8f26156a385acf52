package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRunReport renders one analysis run for the terminal: the listing
// table, the aggregate statistics, and the recommendation report.
func printRunReport(result *domain.RunResult) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("TITLE\tPRICE\tCONDITION\tBRAND\n")
	for i := range result.Records {
		rec := &result.Records[i]
		priceCol := rec.PriceText
		if rec.Priced {
			priceCol = fmt.Sprintf("£%.2f", rec.NumericPrice)
		}
		tw.writef("%s\t%s\t%s\t%s\n",
			truncate(rec.Title, 60),
			priceCol,
			rec.Condition,
			rec.Brand,
		)
	}
	if err := tw.finish(); err != nil {
		return err
	}

	a := &result.Analysis
	fmt.Printf("\nListings: %d (%d priced)  Run: %s\n", len(result.Records), a.PricedCount, result.RunID)
	if !a.Empty() {
		fmt.Printf("Mean £%.2f  Median £%.2f  Range £%.2f-£%.2f\n", a.Mean, a.Median, a.Min, a.Max)
	}

	fmt.Println()
	for _, line := range result.Recommendations {
		fmt.Println(line)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
