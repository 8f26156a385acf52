package price_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejezie/Enact-Pricing/pkg/price"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "plain pounds", input: "£99.99", want: 99.99, wantOK: true},
		{name: "thousands separator", input: "£1,234.50", want: 1234.50, wantOK: true},
		{name: "range takes lower bound", input: "£10 to £20", want: 10.00, wantOK: true},
		{name: "range with decimals", input: "£10.50 to £20.99", want: 10.50, wantOK: true},
		{name: "dollar sign", input: "$45.00", want: 45.00, wantOK: true},
		{name: "no currency symbol", input: "123", want: 123, wantOK: true},
		{name: "dotted thousands separators", input: "1.234.50", want: 1234.50, wantOK: true},
		{name: "surrounding whitespace", input: "  £5.00  ", want: 5.00, wantOK: true},
		{name: "free shipping suffix", input: "£12.99 postage", want: 12.99, wantOK: true},
		{name: "placeholder", input: "Not specified", wantOK: false},
		{name: "placeholder lowercase", input: "not specified", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "whitespace only", input: "   ", wantOK: false},
		{name: "no digits", input: "Free", wantOK: false},
		{name: "lone currency symbol", input: "£", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := price.Normalize(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 0.001)
			} else {
				assert.Zero(t, got)
			}
		})
	}
}

// Normalizing the canonical decimal representation of a parsed value must
// return the same value.
func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"£1,234.50", "£10 to £20", "£0.99", "42"}
	for _, in := range inputs {
		first, ok := price.Normalize(in)
		require.True(t, ok, in)

		canonical := strconv.FormatFloat(first, 'f', -1, 64)
		second, ok := price.Normalize(canonical)
		require.True(t, ok, canonical)
		assert.Equal(t, first, second)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	t.Parallel()

	for range 10 {
		got, ok := price.Normalize("£1,234.50")
		require.True(t, ok)
		assert.InDelta(t, 1234.50, got, 0.001)
	}
}
