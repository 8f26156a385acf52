package extract

import (
	"strings"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// NormalizeCondition maps the free-text condition string shown on a
// listing to a canonical condition. Matching is keyword based because
// eBay's UK site mixes phrasings ("Pre-owned", "Used", "Opened - never
// used") across listing generations.
func NormalizeCondition(text string) domain.Condition {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" || strings.EqualFold(text, domain.NotSpecified) {
		return domain.ConditionUnknown
	}

	switch {
	case strings.Contains(s, "parts") || strings.Contains(s, "not working"):
		return domain.ConditionForParts
	case strings.Contains(s, "refurbished"):
		return domain.ConditionRefurbished
	case strings.Contains(s, "open box") || strings.Contains(s, "opened") || strings.Contains(s, "never used") || strings.Contains(s, "like new"):
		return domain.ConditionLikeNew
	case strings.Contains(s, "brand new") || s == "new" || strings.HasPrefix(s, "new "):
		return domain.ConditionNew
	case strings.Contains(s, "pre-owned") || strings.Contains(s, "preowned") || strings.Contains(s, "used"):
		return domain.ConditionUsed
	default:
		return domain.ConditionUnknown
	}
}
