// Package domain defines the core business types for the market snapshot
// pipeline: extracted listing records, normalized records, and the aggregate
// market analysis derived from them.
package domain

import (
	"strings"
	"time"
)

// NotSpecified is the canonical value for optional text fields that the
// source explicitly marked as absent. An empty string means the field was
// never seen at all.
const NotSpecified = "Not specified"

// placeholderTitle marks eBay's non-product filler card that appears at the
// top of every search results page.
const placeholderTitle = "shop on ebay"

// IsPlaceholderTitle reports whether a title belongs to a non-product
// placeholder node rather than a real listing.
func IsPlaceholderTitle(title string) bool {
	return strings.EqualFold(strings.TrimSpace(title), placeholderTitle)
}

// Condition is the normalized listing condition category.
type Condition string

// Condition constants.
const (
	ConditionNew         Condition = "new"
	ConditionLikeNew     Condition = "like_new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
	ConditionForParts    Condition = "for_parts"
	ConditionUnknown     Condition = "unknown"
)

// Record is one marketplace listing as extracted, before price
// normalization. Records are values: extraction produces them,
// normalization reads them and produces NormalizedRecords, nothing
// mutates them in between.
type Record struct {
	Title         string `json:"title"`
	PriceText     string `json:"price_text"`
	ConditionText string `json:"condition_text,omitempty"`
	Brand         string `json:"brand,omitempty"`
	Seller        string `json:"seller,omitempty"`
	ShippingText  string `json:"shipping_text,omitempty"`
	Description   string `json:"description,omitempty"`
	Link          string `json:"link,omitempty"`
}

// NormalizedRecord is a Record enriched with a parsed numeric price.
// NumericPrice is zero when PriceText could not be parsed; Priced
// distinguishes that case so downstream statistics never mistake a parse
// failure for a free item.
type NormalizedRecord struct {
	Record

	NumericPrice float64   `json:"numeric_price"`
	Priced       bool      `json:"priced"`
	Condition    Condition `json:"condition"`
}

// PriceSegments holds the three price band boundaries derived from the
// aggregate statistics: budget = max(0, mean-spread), mid = mean,
// premium = mean+spread.
type PriceSegments struct {
	Budget  float64 `json:"budget"`
	Mid     float64 `json:"mid_range"`
	Premium float64 `json:"premium"`
}

// MarketAnalysis is the aggregate derived from a set of normalized records.
// When PricedCount is zero every statistic is zero and BrandAverages is
// empty; that is a defined state, not an error.
type MarketAnalysis struct {
	PricedCount int     `json:"priced_count"`
	Mean        float64 `json:"average_price"`
	Median      float64 `json:"median_price"`
	StdDev      float64 `json:"price_std"`
	Min         float64 `json:"min_price"`
	Max         float64 `json:"max_price"`

	// BrandAverages maps brand name to mean price over that brand's
	// priced records. BrandOrder preserves first-seen order so brand
	// ranking ties break deterministically.
	BrandAverages map[string]float64 `json:"brand_averages"`
	BrandOrder    []string           `json:"-"`

	Segments PriceSegments `json:"price_segments"`
}

// Empty reports whether the analysis carries no priced data.
func (a *MarketAnalysis) Empty() bool {
	return a.PricedCount == 0
}

// RunMeta carries per-run bookkeeping surfaced to the caller. Chunk
// failures are reported here instead of as errors.
type RunMeta struct {
	FetchOK       bool          `json:"fetch_ok"`
	Extracted     int           `json:"extracted"`
	Skipped       int           `json:"skipped"`
	ChunksTotal   int           `json:"chunks_total"`
	ChunkFailures int           `json:"chunk_failures"`
	Duration      time.Duration `json:"duration_ns"`
}

// RunResult is the full output of one analysis run.
type RunResult struct {
	RunID           string             `json:"run_id"`
	SearchTerm      string             `json:"search_term"`
	Records         []NormalizedRecord `json:"records"`
	Analysis        MarketAnalysis     `json:"market_analysis"`
	Recommendations []string           `json:"recommendations"`
	Meta            RunMeta            `json:"meta"`
	CreatedAt       time.Time          `json:"created_at"`
}
