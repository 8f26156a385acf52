package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

func TestParseRecords_PlainArray(t *testing.T) {
	raw := `[{"title": "Dell XPS 13", "price": "£549.99", "brand": "Dell", "condition": "Used"}]`

	records, err := ParseRecords(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dell XPS 13", records[0].Title)
	assert.Equal(t, "£549.99", records[0].PriceText)
	assert.Equal(t, "Dell", records[0].Brand)
	assert.Equal(t, "Used", records[0].ConditionText)
	assert.Equal(t, domain.NotSpecified, records[0].Seller)
}

func TestParseRecords_MarkdownFences(t *testing.T) {
	raw := "```json\n[{\"title\": \"ThinkPad T14\", \"price\": \"£300\"}]\n```"

	records, err := ParseRecords(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ThinkPad T14", records[0].Title)
}

func TestParseRecords_SurroundingProse(t *testing.T) {
	raw := `Here are the listings I found:
[{"title": "MacBook Air", "price": "£450"}]
Let me know if you need anything else.`

	records, err := ParseRecords(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "MacBook Air", records[0].Title)
}

func TestParseRecords_DropsIncompleteObjects(t *testing.T) {
	raw := `[
		{"title": "Complete", "price": "£10"},
		{"title": "No price"},
		{"price": "£20"},
		{"title": "Shop on eBay", "price": "£1"}
	]`

	records, err := ParseRecords(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Complete", records[0].Title)
}

func TestParseRecords_EmptyArray(t *testing.T) {
	records, err := ParseRecords("[]")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseRecords_NotAnArray(t *testing.T) {
	for _, raw := range []string{
		"I could not find any listings.",
		`{"title": "object not array", "price": "£1"}`,
		"",
		"[broken json",
	} {
		_, err := ParseRecords(raw)
		assert.ErrorIs(t, err, ErrNoJSONArray, "input: %q", raw)
	}
}
