package analyze

import (
	"fmt"
	"sort"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// maxBrandInsights caps the brand ranking section.
const maxBrandInsights = 5

// Strategic note lines. Exactly one of each pair appears in every
// non-empty recommendation set.
const (
	notePremiumOpportunity = "• The market shows premium pricing opportunities, consider positioning in the upper segments"
	notePriceSensitive     = "• The market is price-sensitive, consider competitive pricing strategies"
	noteWideRange          = "• Wide price range indicates diverse market segments, consider multi-tier pricing"
	noteNarrowRange        = "• Narrow price range suggests standardized pricing, focus on value-added features"
)

// InsufficientData is the single-line result for an empty analysis.
const InsufficientData = "Insufficient data for price analysis."

// Recommendations renders an analysis into ordered, human-readable lines:
// market overview, price segments, brand insights (top brands by average
// price, descending, ties by first-seen order), then strategic notes
// driven by fixed threshold rules. Pure function of its input.
func Recommendations(a domain.MarketAnalysis) []string {
	if a.Empty() {
		return []string{InsufficientData}
	}

	lines := []string{
		"Market Overview",
		fmt.Sprintf("• The average price in the market is £%.2f", a.Mean),
		fmt.Sprintf("• The median price is £%.2f", a.Median),
		fmt.Sprintf("• Prices range from £%.2f to £%.2f", a.Min, a.Max),

		"Price Segments",
		fmt.Sprintf("• Budget segment: Below £%.2f", a.Segments.Budget),
		fmt.Sprintf("• Mid-range segment: Around £%.2f", a.Segments.Mid),
		fmt.Sprintf("• Premium segment: Above £%.2f", a.Segments.Premium),
	}

	if len(a.BrandAverages) > 0 {
		lines = append(lines, "Brand Insights")
		for _, brand := range rankBrands(a) {
			lines = append(lines,
				fmt.Sprintf("• %s: Average price £%.2f", brand, a.BrandAverages[brand]))
		}
	}

	lines = append(lines, "Strategic Recommendations")

	if a.Median > a.Mean {
		lines = append(lines, notePremiumOpportunity)
	} else {
		lines = append(lines, notePriceSensitive)
	}

	if a.Max-a.Min > a.Mean {
		lines = append(lines, noteWideRange)
	} else {
		lines = append(lines, noteNarrowRange)
	}

	return lines
}

// rankBrands returns up to maxBrandInsights brand names sorted by average
// price descending. Equal averages keep their first-seen order: the sort is
// stable over BrandOrder.
func rankBrands(a domain.MarketAnalysis) []string {
	ranked := make([]string, len(a.BrandOrder))
	copy(ranked, a.BrandOrder)

	sort.SliceStable(ranked, func(i, j int) bool {
		return a.BrandAverages[ranked[i]] > a.BrandAverages[ranked[j]]
	})

	if len(ranked) > maxBrandInsights {
		ranked = ranked[:maxBrandInsights]
	}
	return ranked
}
