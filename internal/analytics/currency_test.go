package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurrencyValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{name: "comma thousands with suffix", in: "1,500,000 so'm", want: 1500000},
		{name: "space thousands", in: "450 000 so'm", want: 450000},
		{name: "dot thousands", in: "1.200.000", want: 1200000},
		{name: "plain number", in: "350000", want: 350000},
		{name: "decimal dot", in: "12.5", want: 12.5},
		{name: "decimal comma", in: "99,90", want: 99.9},
		{name: "european grouping", in: "1.234.567,89", want: 1234567.89},
		{name: "us grouping", in: "1,234,567.89", want: 1234567.89},
		{name: "single thousands separator", in: "2,500", want: 2500},
		{name: "trailing period", in: "1,500,000 so'm.", want: 1500000},
		{name: "negative", in: "-300", want: -300},
		{name: "empty", in: "", want: 0},
		{name: "letters only", in: "abc", want: 0},
		{name: "separator only", in: ".", want: 0},
		{name: "dash only", in: "-", want: 0},
		{name: "two decimals", in: "1,2.3,4", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseCurrencyValue(tt.in), 1e-9)
		})
	}
}
