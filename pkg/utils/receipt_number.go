package utils

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// ReceiptNumberPrefix is the fixed prefix of human-facing receipt numbers.
const ReceiptNumberPrefix = "RCP"

// GenerateReceiptNumber returns a reference like RCP-250114-0427 built from
// today's date and a random four digit suffix. It is not a key: two
// receipts on the same day collide with probability 1/10000.
func GenerateReceiptNumber() string {
	return FormatReceiptNumber(time.Now(), rand.IntN(10000))
}

// FormatReceiptNumber formats a receipt number for the given date and suffix.
// The suffix is reduced modulo 10000.
func FormatReceiptNumber(t time.Time, suffix int) string {
	if suffix < 0 {
		suffix = -suffix
	}
	return fmt.Sprintf("%s-%s-%04d", ReceiptNumberPrefix, t.Format("060102"), suffix%10000)
}
