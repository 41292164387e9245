package entity

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptSize is a paper format a receipt can be laid out on
type ReceiptSize string

const (
	ReceiptSizeA7 ReceiptSize = "A7"
	ReceiptSizeA6 ReceiptSize = "A6"
	ReceiptSizeA5 ReceiptSize = "A5"
	ReceiptSizeA4 ReceiptSize = "A4"
)

// PageSpec is the physical geometry of a receipt size
type PageSpec struct {
	Size      ReceiptSize `json:"size"`
	WidthMm   float64     `json:"width_mm"`
	HeightMm  float64     `json:"height_mm"`
	Label     string      `json:"label"`
	FontScale float64     `json:"font_scale"`
}

var pageSpecs = map[ReceiptSize]PageSpec{
	ReceiptSizeA7: {Size: ReceiptSizeA7, WidthMm: 74, HeightMm: 105, Label: "A7 (74 × 105 mm)", FontScale: 0.6},
	ReceiptSizeA6: {Size: ReceiptSizeA6, WidthMm: 105, HeightMm: 148, Label: "A6 (105 × 148 mm)", FontScale: 0.75},
	ReceiptSizeA5: {Size: ReceiptSizeA5, WidthMm: 148, HeightMm: 210, Label: "A5 (148 × 210 mm)", FontScale: 0.9},
	ReceiptSizeA4: {Size: ReceiptSizeA4, WidthMm: 210, HeightMm: 297, Label: "A4 (210 × 297 mm)", FontScale: 1.0},
}

// ReceiptSizes lists the supported sizes from smallest to largest
func ReceiptSizes() []PageSpec {
	return []PageSpec{
		pageSpecs[ReceiptSizeA7],
		pageSpecs[ReceiptSizeA6],
		pageSpecs[ReceiptSizeA5],
		pageSpecs[ReceiptSizeA4],
	}
}

// ParseReceiptSize accepts "a5", " A5 " etc.
func ParseReceiptSize(s string) (ReceiptSize, bool) {
	size := ReceiptSize(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := pageSpecs[size]
	return size, ok
}

func (s ReceiptSize) IsValid() bool {
	_, ok := pageSpecs[s]
	return ok
}

// Spec returns the page geometry. Unknown sizes fall back to A5.
func (s ReceiptSize) Spec() PageSpec {
	if spec, ok := pageSpecs[s]; ok {
		return spec
	}
	return pageSpecs[ReceiptSizeA5]
}

// FontScale is the multiplier applied to every base font size
func (s ReceiptSize) FontScale() float64 {
	return s.Spec().FontScale
}

// SchoolInfo is the receipt letterhead
type SchoolInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ReceiptFields are the values a user may edit before printing
type ReceiptFields struct {
	PaymentDate    string `json:"payment_date"`
	AmountInWords  string `json:"amount_in_words"`
	Notes          string `json:"notes"`
	SignatureLabel string `json:"signature_label"`
}

// StudentLine is one student row on a receipt
type StudentLine struct {
	StudentID       uuid.UUID       `json:"student_id"`
	StudentName     string          `json:"student_name"`
	ClassName       string          `json:"class_name"`
	AdmissionNumber *string         `json:"admission_number"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	Balance         decimal.Decimal `json:"balance"`
	BalanceKnown    bool            `json:"balance_known"`
}

// AdmissionOrNA returns the admission number or "N/A"
func (l StudentLine) AdmissionOrNA() string {
	if l.AdmissionNumber == nil || *l.AdmissionNumber == "" {
		return "N/A"
	}
	return *l.AdmissionNumber
}

// ReceiptData is the single document model every renderer consumes. It is
// rebuilt from session state for each render and never modified afterwards.
type ReceiptData struct {
	ReceiptNumber  string        `json:"receipt_number"`
	PaymentDate    string        `json:"payment_date"`
	PaymentMethod  string        `json:"payment_method"`
	Students       []StudentLine `json:"students"`
	AmountInWords  string        `json:"amount_in_words"`
	Notes          string        `json:"notes"`
	SignatureLabel string        `json:"signature_label"`
	Currency       string        `json:"currency"`
	School         SchoolInfo    `json:"school"`
}

// TotalPaid is the sum of every line's amount paid
func (r *ReceiptData) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Students {
		total = total.Add(s.AmountPaid)
	}
	return total
}

// TotalBalance sums the line balances. known is false when any line's
// balance could not be looked up.
func (r *ReceiptData) TotalBalance() (total decimal.Decimal, known bool) {
	total = decimal.Zero
	known = true
	for _, s := range r.Students {
		if !s.BalanceKnown {
			known = false
			continue
		}
		total = total.Add(s.Balance)
	}
	return total, known
}

// IsFamily reports whether the receipt lists more than one student
func (r *ReceiptData) IsFamily() bool {
	return len(r.Students) > 1
}

// MarshalJSON adds the derived totals. total_balance is null when unknown.
func (r ReceiptData) MarshalJSON() ([]byte, error) {
	type plain ReceiptData
	var totalBalance *decimal.Decimal
	if tb, ok := r.TotalBalance(); ok {
		totalBalance = &tb
	}
	return json.Marshal(struct {
		plain
		TotalPaid    decimal.Decimal  `json:"total_paid"`
		TotalBalance *decimal.Decimal `json:"total_balance"`
	}{
		plain:        plain(r),
		TotalPaid:    r.TotalPaid(),
		TotalBalance: totalBalance,
	})
}
