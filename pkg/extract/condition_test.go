package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

func TestNormalizeCondition(t *testing.T) {
	tests := []struct {
		text string
		want domain.Condition
	}{
		{"Brand New", domain.ConditionNew},
		{"New", domain.ConditionNew},
		{"New with tags", domain.ConditionNew},
		{"Opened – never used", domain.ConditionLikeNew},
		{"Open box", domain.ConditionLikeNew},
		{"Pre-owned", domain.ConditionUsed},
		{"Used", domain.ConditionUsed},
		{"Very Good - Refurbished", domain.ConditionRefurbished},
		{"Seller refurbished", domain.ConditionRefurbished},
		{"For parts or not working", domain.ConditionForParts},
		{"Not specified", domain.ConditionUnknown},
		{"", domain.ConditionUnknown},
		{"Something else entirely", domain.ConditionUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCondition(tt.text), "input: %q", tt.text)
	}
}
