// Package numwords spells out whole amounts in English for receipts.
package numwords

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

const (
	thousand = 1_000
	million  = 1_000_000
	billion  = 1_000_000_000
)

// Convert returns the English words for n, e.g. 1234 ->
// "One Thousand Two Hundred and Thirty Four".
//
// Negative input is clamped to zero. Fractions are the caller's concern; see Amount.
func Convert(n int64) string {
	if n <= 0 {
		return "Zero"
	}
	return convert(n)
}

// Amount rounds a money value to the nearest whole unit and converts it.
func Amount(amount decimal.Decimal) string {
	return Convert(amount.Round(0).IntPart())
}

func convert(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	case n < thousand:
		words := ones[n/100] + " Hundred"
		if rest := n % 100; rest != 0 {
			words += " and " + convert(rest)
		}
		return words
	case n < million:
		return scaled(n, thousand, "Thousand")
	case n < billion:
		return scaled(n, million, "Million")
	default:
		return scaled(n, billion, "Billion")
	}
}

func scaled(n, unit int64, name string) string {
	var b strings.Builder
	b.WriteString(convert(n / unit))
	b.WriteString(" ")
	b.WriteString(name)
	if rest := n % unit; rest != 0 {
		b.WriteString(" ")
		b.WriteString(convert(rest))
	}
	return b.String()
}
