package tuistyles

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in       string
		currency string
		want     string
	}{
		{"0", "", "0"},
		{"999.49", "", "999"},
		{"1061149.40", "THB", "1,061,149 THB"},
		{"-52000", "", "-52,000"},
		{"-0.2", "", "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in), tt.currency), tt.in)
	}
}

func TestTrendIndicator(t *testing.T) {
	assert.Equal(t, "▲", TrendIndicator(true))
	assert.Equal(t, "▼", TrendIndicator(false))
}
