package render

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// Money formats amount with thousands separators and the currency prefix,
// e.g. "KES 15,000" or "KES 1,250.50". Negative amounts keep their sign.
func Money(currency string, amount decimal.Decimal) string {
	abs := amount.Abs()
	var digits string
	if abs.Equal(abs.Truncate(0)) {
		digits = moneyPrinter.Sprintf("%d", abs.IntPart())
	} else {
		// group the integer part only; the cents come from the decimal itself
		r := abs.Round(2)
		fixed := r.StringFixed(2)
		digits = moneyPrinter.Sprintf("%d", r.IntPart()) + fixed[strings.IndexByte(fixed, '.'):]
	}
	if amount.IsNegative() && !abs.Round(2).IsZero() {
		digits = "-" + digits
	}
	if currency == "" {
		return digits
	}
	return currency + " " + digits
}

// Number formats n with thousands separators and no currency.
func Number(n int64) string {
	return moneyPrinter.Sprintf("%d", n)
}
