// Package price normalizes free-text marketplace price strings into numeric
// amounts. Listing prices arrive in every shape the site produces:
// "£1,234.50", "£10.00 to £20.00", "Not specified", occasionally empty.
package price

import (
	"strconv"
	"strings"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// rangeSeparator splits "£10 to £20" style price ranges. The lower bound is
// the canonical value.
const rangeSeparator = " to "

// Normalize parses arbitrary price text into a non-negative amount.
// Returns (0, false) for empty, placeholder, or unparseable text.
// Deterministic and side-effect free: the same input always yields the
// same output, and normalizing the canonical decimal form of a parsed
// value returns that value.
func Normalize(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, domain.NotSpecified) {
		return 0, false
	}

	// Ranges take the lower bound.
	if lower, _, found := strings.Cut(text, rangeSeparator); found {
		text = lower
	}

	numeric := stripNonNumeric(text)
	numeric = collapseDots(numeric)

	if numeric == "" {
		return 0, false
	}

	amount, err := strconv.ParseFloat(numeric, 64)
	if err != nil || amount < 0 {
		return 0, false
	}

	return amount, true
}

// stripNonNumeric removes everything that is not a digit or a decimal
// point, dropping currency symbols and thousands separators in one pass.
func stripNonNumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseDots keeps only the last decimal point when stripping leaves more
// than one, treating the earlier ones as thousands separators
// ("1.234.50" becomes "1234.50").
func collapseDots(s string) string {
	extra := strings.Count(s, ".") - 1
	if extra <= 0 {
		return s
	}
	return strings.Replace(s, ".", "", extra)
}
