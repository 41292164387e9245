// Package render turns a ReceiptData into a screen preview, a print-ready
// HTML page, a PDF and ESC/POS bytes. Every output starts from Compose so
// the wording and ordering stay identical across formats.
package render

import (
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/pkg/numwords"
)

// Fixed receipt wording
const (
	TitleText    = "PAYMENT RECEIPT"
	FamilyBanner = "FAMILY RECEIPT - COMBINED PAYMENT"
	ThankYouText = "Thank you for your payment!"
	unknownValue = "N/A"
	pdfNameLimit = 20
)

// Role names the typographic role of a piece of text
type Role string

const (
	RoleSchoolName Role = "school_name"
	RoleTitle      Role = "title"
	RoleBody       Role = "body"
	RoleSmall      Role = "small"
	RoleTable      Role = "table"
	RoleSummary    Role = "summary"
	RoleFooter     Role = "footer"
)

// Pair is a labelled value such as "Amount Paid:" / "KES 15,000"
type Pair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Table is the family-mode student table
type Table struct {
	Headers      []string   `json:"headers"`
	Rows         [][]string `json:"rows"`
	RightAligned []bool     `json:"right_aligned"`
}

// Composition is the text content of a receipt in display order
type Composition struct {
	SchoolName    string `json:"school_name"`
	SchoolAddress string `json:"school_address,omitempty"`
	SchoolPhone   string `json:"school_phone,omitempty"`
	Title         string `json:"title"`
	ReceiptNo     Pair   `json:"receipt_no"`
	Date          Pair   `json:"date"`
	Method        Pair   `json:"method"`
	Banner        string `json:"banner,omitempty"`
	Table         *Table `json:"table,omitempty"`
	Details       []Pair `json:"details,omitempty"`
	AmountPaid    Pair   `json:"amount_paid"`
	InWords       Pair   `json:"in_words"`
	Balance       Pair   `json:"balance"`
	Notes         *Pair  `json:"notes,omitempty"`
	Signature     string `json:"signature"`
	ThankYou      string `json:"thank_you"`
}

// Compose lays out the receipt text. It does not truncate anything.
func Compose(data entity.ReceiptData) Composition {
	c := Composition{
		SchoolName:    data.School.Name,
		SchoolAddress: data.School.Address,
		Title:         TitleText,
		ReceiptNo:     Pair{"Receipt No:", data.ReceiptNumber},
		Date:          Pair{"Date:", data.PaymentDate},
		Method:        Pair{"Payment Method:", data.PaymentMethod},
		Signature:     data.SignatureLabel,
		ThankYou:      ThankYouText,
	}
	if data.School.Phone != "" {
		c.SchoolPhone = "Tel: " + data.School.Phone
	}

	total := data.TotalPaid()
	words := data.AmountInWords
	if words == "" {
		words = numwords.Amount(total)
	}
	c.AmountPaid = Pair{"Amount Paid:", Money(data.Currency, total)}
	c.InWords = Pair{"In Words:", words + " Shillings Only"}

	if data.IsFamily() {
		c.Banner = FamilyBanner
		c.Table = &Table{
			Headers:      []string{"Student", "Adm. No.", "Class", "Amount", "Balance"},
			RightAligned: []bool{false, false, false, true, true},
		}
		for _, s := range data.Students {
			c.Table.Rows = append(c.Table.Rows, []string{
				s.StudentName,
				s.AdmissionOrNA(),
				s.ClassName,
				Money(data.Currency, s.AmountPaid),
				balanceText(data.Currency, s),
			})
		}
		c.Balance = Pair{"Total Balance:", totalBalanceText(data)}
	} else {
		var line entity.StudentLine
		if len(data.Students) == 1 {
			line = data.Students[0]
		}
		c.Details = []Pair{
			{"Student Name:", line.StudentName},
			{"Admission No:", line.AdmissionOrNA()},
			{"Class:", line.ClassName},
		}
		c.Balance = Pair{"Balance:", balanceText(data.Currency, line)}
	}

	if data.Notes != "" {
		c.Notes = &Pair{"Notes:", data.Notes}
	}
	return c
}

func balanceText(currency string, line entity.StudentLine) string {
	if !line.BalanceKnown {
		return unknownValue
	}
	return Money(currency, line.Balance)
}

func totalBalanceText(data entity.ReceiptData) string {
	total, known := data.TotalBalance()
	if !known {
		return unknownValue
	}
	return Money(data.Currency, total)
}

// truncateRunes shortens s to at most n characters
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
