// Package analyze computes aggregate market statistics over normalized
// listing records and turns them into rule-based pricing recommendations.
package analyze

import (
	"math"
	"sort"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// spreadFallbackRatio is used in place of the sample standard deviation
// when fewer than two priced records exist and variance is undefined.
const spreadFallbackRatio = 0.2

// Analyze computes a MarketAnalysis over the given records. Only records
// with a parsed price above zero participate in the statistics; unpriced
// records are counted nowhere but remain valid inputs. An empty or fully
// unpriced input yields the zero-valued analysis with an empty brand map.
//
// Accumulation keeps full float precision; rounding to two decimal places
// happens only when values are formatted for presentation.
func Analyze(records []domain.NormalizedRecord) domain.MarketAnalysis {
	analysis := domain.MarketAnalysis{
		BrandAverages: make(map[string]float64),
	}

	var prices []float64
	for i := range records {
		if records[i].Priced && records[i].NumericPrice > 0 {
			prices = append(prices, records[i].NumericPrice)
		}
	}

	if len(prices) == 0 {
		return analysis
	}

	analysis.PricedCount = len(prices)
	analysis.Mean = mean(prices)
	analysis.Median = median(prices)
	analysis.StdDev = spread(prices, analysis.Mean)
	analysis.Min, analysis.Max = minMax(prices)
	analysis.BrandAverages, analysis.BrandOrder = brandAverages(records)

	analysis.Segments = domain.PriceSegments{
		Budget:  math.Max(0, analysis.Mean-analysis.StdDev),
		Mid:     analysis.Mean,
		Premium: analysis.Mean + analysis.StdDev,
	}

	return analysis
}

func mean(prices []float64) float64 {
	var sum float64
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices))
}

func median(prices []float64) float64 {
	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// spread returns the sample standard deviation, or 20% of the mean when
// fewer than two prices exist.
func spread(prices []float64, avg float64) float64 {
	if len(prices) < 2 {
		return avg * spreadFallbackRatio
	}

	var sumSq float64
	for _, p := range prices {
		d := p - avg
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(prices)-1))
}

func minMax(prices []float64) (float64, float64) {
	lo, hi := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return lo, hi
}

// brandAverages computes the mean price per brand over priced records,
// skipping absent and explicitly unspecified brands. The returned order
// slice preserves first appearance so downstream ranking ties are stable.
func brandAverages(records []domain.NormalizedRecord) (map[string]float64, []string) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string

	for i := range records {
		r := &records[i]
		if r.Brand == "" || r.Brand == domain.NotSpecified {
			continue
		}
		if !r.Priced || r.NumericPrice <= 0 {
			continue
		}
		if _, seen := counts[r.Brand]; !seen {
			order = append(order, r.Brand)
		}
		sums[r.Brand] += r.NumericPrice
		counts[r.Brand]++
	}

	averages := make(map[string]float64, len(sums))
	for brand, sum := range sums {
		averages[brand] = sum / float64(counts[brand])
	}
	return averages, order
}
