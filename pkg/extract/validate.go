package extract

import (
	"encoding/json"
	"errors"
	"strings"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

// ErrNoJSONArray reports that a delegate response contained nothing that
// parses as a JSON array of listing objects.
var ErrNoJSONArray = errors.New("extract: response contains no JSON array")

// ParseRecords parses a delegate response into listing records. The
// response is cleaned of markdown fences and surrounding prose first;
// objects missing a title or price are dropped rather than failing the
// whole chunk. A response that is not a JSON array at all returns
// ErrNoJSONArray so the caller can attempt a repair.
func ParseRecords(raw string) ([]domain.Record, error) {
	payload, ok := arrayPayload(raw)
	if !ok {
		return nil, ErrNoJSONArray
	}

	var objects []map[string]any
	if err := json.Unmarshal([]byte(payload), &objects); err != nil {
		return nil, ErrNoJSONArray
	}

	records := make([]domain.Record, 0, len(objects))
	for _, obj := range objects {
		if rec, ok := toRecord(obj); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// arrayPayload pulls the JSON array out of a response that may be wrapped
// in markdown fences or conversational prose.
func arrayPayload(raw string) (string, bool) {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// toRecord converts one parsed object into a Record. Title and price are
// required; every other field falls back to "Not specified". Placeholder
// cards are rejected here as well since the delegate sometimes echoes them.
func toRecord(obj map[string]any) (domain.Record, bool) {
	title := attrString(obj, "title")
	price := attrString(obj, "price")
	if title == "" || price == "" {
		return domain.Record{}, false
	}
	if domain.IsPlaceholderTitle(title) {
		return domain.Record{}, false
	}

	return domain.Record{
		Title:         title,
		PriceText:     price,
		ConditionText: attrStringOr(obj, "condition", domain.NotSpecified),
		Brand:         attrStringOr(obj, "brand", domain.NotSpecified),
		Seller:        attrStringOr(obj, "seller", domain.NotSpecified),
		ShippingText:  attrStringOr(obj, "shipping", domain.NotSpecified),
		Description:   attrStringOr(obj, "description", domain.NotSpecified),
		Link:          attrString(obj, "link"),
	}, true
}

func attrString(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func attrStringOr(obj map[string]any, key, fallback string) string {
	if v := attrString(obj, key); v != "" {
		return v
	}
	return fallback
}
