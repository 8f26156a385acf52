package responder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejezie/Enact-Pricing/pkg/extract"
	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

type cannedBackend struct {
	content string
	err     error
	prompts []string
}

func (c *cannedBackend) Generate(_ context.Context, req extract.GenerateRequest) (extract.GenerateResponse, error) {
	c.prompts = append(c.prompts, req.Prompt)
	if c.err != nil {
		return extract.GenerateResponse{}, c.err
	}
	return extract.GenerateResponse{Content: c.content, Model: "canned"}, nil
}

func (c *cannedBackend) Name() string { return "canned" }

func sampleResult() *domain.RunResult {
	return &domain.RunResult{
		RunID:      "run-1",
		SearchTerm: "laptop",
		Records: []domain.NormalizedRecord{
			{Record: domain.Record{Title: "Dell XPS", Brand: "Dell"}, NumericPrice: 100, Priced: true},
			{Record: domain.Record{Title: "MacBook", Brand: "Apple"}, NumericPrice: 200, Priced: true},
		},
		Analysis: domain.MarketAnalysis{
			PricedCount: 2,
			Mean:        150,
			Median:      150,
			StdDev:      70.71,
			Min:         100,
			Max:         200,
			BrandAverages: map[string]float64{
				"Dell":  100,
				"Apple": 200,
			},
			BrandOrder: []string{"Dell", "Apple"},
			Segments:   domain.PriceSegments{Budget: 79.29, Mid: 150, Premium: 220.71},
		},
	}
}

func TestAnswer_NoData(t *testing.T) {
	r := New(extract.NewAdapter(&cannedBackend{}), nil)

	assert.Equal(t, NoDataMessage, r.Answer(context.Background(), "what is the average?", nil))
	assert.Equal(t, NoDataMessage, r.Answer(context.Background(), "what is the average?", &domain.RunResult{}))
	assert.Equal(t, NoDataMessage, r.Answer(context.Background(), "  ", sampleResult()))
}

func TestAnswer_HappyPath(t *testing.T) {
	backend := &cannedBackend{content: "The average price is £150.00."}
	r := New(extract.NewAdapter(backend), nil)

	answer := r.Answer(context.Background(), "what is the average price?", sampleResult())
	assert.Equal(t, "The average price is £150.00.", answer)

	// The summary with pre-computed statistics must reach the delegate.
	require.Len(t, backend.prompts, 1)
	assert.Contains(t, backend.prompts[0], "Average price: £150.00")
	assert.Contains(t, backend.prompts[0], "what is the average price?")
}

func TestAnswer_DelegateFailure(t *testing.T) {
	backend := &cannedBackend{err: errors.New("model overloaded")}
	r := New(extract.NewAdapter(backend), nil)

	answer := r.Answer(context.Background(), "what is trending?", sampleResult())
	assert.Equal(t, FailureMessage, answer)
	assert.NotContains(t, answer, "overloaded", "raw errors must not leak to the user")
}

func TestSummary(t *testing.T) {
	s := Summary(sampleResult())

	assert.Contains(t, s, "Search term: laptop")
	assert.Contains(t, s, "Products analyzed: 2")
	assert.Contains(t, s, "Median price: £150.00")
	assert.Contains(t, s, "Price range: £100.00 - £200.00")
	assert.Contains(t, s, "Brands: Dell, Apple")
}

func TestSummary_NoPricedRecords(t *testing.T) {
	result := &domain.RunResult{
		SearchTerm: "laptop",
		Records: []domain.NormalizedRecord{
			{Record: domain.Record{Title: "Mystery"}},
		},
	}

	s := Summary(result)
	assert.Contains(t, s, "No listings had a parseable price.")
	assert.False(t, strings.Contains(s, "Average price"))
}
