package numwords

import (
	"strings"
	"testing"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{name: "zero", n: 0, want: "Zero"},
		{name: "negative clamps to zero", n: -15, want: "Zero"},
		{name: "single digit", n: 7, want: "Seven"},
		{name: "irregular teen", n: 19, want: "Nineteen"},
		{name: "eleven", n: 11, want: "Eleven"},
		{name: "round tens", n: 40, want: "Forty"},
		{name: "tens and ones", n: 85, want: "Eighty Five"},
		{name: "round hundred", n: 100, want: "One Hundred"},
		{name: "hundred and teen", n: 115, want: "One Hundred and Fifteen"},
		{name: "thousands", n: 1234, want: "One Thousand Two Hundred and Thirty Four"},
		{name: "round thousand", n: 15000, want: "Fifteen Thousand"},
		{name: "thousand and small", n: 1005, want: "One Thousand Five"},
		{name: "hundreds of thousands", n: 250300, want: "Two Hundred and Fifty Thousand Three Hundred"},
		{name: "million", n: 1_000_000, want: "One Million"},
		{name: "millions mixed", n: 2_500_075, want: "Two Million Five Hundred Thousand Seventy Five"},
		{name: "billion", n: 3_000_000_001, want: "Three Billion One"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.n))
		})
	}
}

func TestConvertHasNoDigitsOrDoubleSpaces(t *testing.T) {
	values := []int64{}
	for n := int64(0); n <= 2500; n++ {
		values = append(values, n)
	}
	values = append(values, 10_001, 99_999, 100_100, 1_000_001, 987_654_321, 12_000_000_012)

	for _, n := range values {
		words := Convert(n)
		if strings.Contains(words, "  ") {
			t.Fatalf("Convert(%d) = %q contains a double space", n, words)
		}
		if words != strings.TrimSpace(words) {
			t.Fatalf("Convert(%d) = %q has surrounding whitespace", n, words)
		}
		for _, r := range words {
			if unicode.IsDigit(r) {
				t.Fatalf("Convert(%d) = %q contains a digit", n, words)
			}
		}
	}
}

func TestAmountRoundsToWholeUnits(t *testing.T) {
	assert.Equal(t, "Fifteen Thousand", Amount(decimal.RequireFromString("15000.00")))
	assert.Equal(t, "One Hundred and One", Amount(decimal.RequireFromString("100.5")))
	assert.Equal(t, "Zero", Amount(decimal.Zero))
}
