package service

import (
	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/pkg/numwords"
	"github.com/shopspring/decimal"
)

// ReceiptStudent is a student that can appear on a receipt, with the
// balance looked up when the session opened.
type ReceiptStudent struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	ClassName       string          `json:"class_name"`
	AdmissionNumber *string         `json:"admission_number"`
	Balance         decimal.Decimal `json:"balance"`
	BalanceKnown    bool            `json:"balance_known"`
}

// ReceiptPayment is the part of a payment a receipt shows
type ReceiptPayment struct {
	ID        uuid.UUID          `json:"id"`
	StudentID uuid.UUID          `json:"student_id"`
	Amount    decimal.Decimal    `json:"amount"`
	Method    enum.PaymentMethod `json:"method"`
}

// ReceiptBuildInput is everything BuildReceiptData needs
type ReceiptBuildInput struct {
	Mode          enum.ReceiptMode
	ReceiptNumber string
	Payment       ReceiptPayment
	// Candidates holds the payer and any siblings, keyed by student id
	Candidates map[uuid.UUID]ReceiptStudent
	// Selection is the family-mode student order; ignored in individual mode
	Selection []uuid.UUID
	School    entity.SchoolInfo
	Fields    entity.ReceiptFields
	Currency  string
}

// BuildReceiptData assembles the receipt document. The payer is always the
// first line and the only one crediting the payment amount; siblings list
// their balance with a zero amount.
func BuildReceiptData(in ReceiptBuildInput) entity.ReceiptData {
	payerID := in.Payment.StudentID

	var order []uuid.UUID
	if in.Mode == enum.ReceiptModeFamily {
		order = familyOrder(payerID, in.Selection)
	} else {
		order = []uuid.UUID{payerID}
	}

	lines := make([]entity.StudentLine, 0, len(order))
	for _, id := range order {
		st, ok := in.Candidates[id]
		if !ok {
			if id != payerID {
				continue
			}
			st = ReceiptStudent{ID: payerID}
		}
		amount := decimal.Zero
		if id == payerID {
			amount = in.Payment.Amount
		}
		lines = append(lines, entity.StudentLine{
			StudentID:       st.ID,
			StudentName:     st.Name,
			ClassName:       st.ClassName,
			AdmissionNumber: st.AdmissionNumber,
			AmountPaid:      amount,
			Balance:         st.Balance,
			BalanceKnown:    st.BalanceKnown,
		})
	}

	data := entity.ReceiptData{
		ReceiptNumber:  in.ReceiptNumber,
		PaymentDate:    in.Fields.PaymentDate,
		PaymentMethod:  in.Payment.Method.Label(),
		AmountInWords:  in.Fields.AmountInWords,
		Students:       lines,
		Notes:          in.Fields.Notes,
		SignatureLabel: in.Fields.SignatureLabel,
		Currency:       in.Currency,
		School:         in.School,
	}
	if data.AmountInWords == "" {
		data.AmountInWords = numwords.Amount(data.TotalPaid())
	}
	return data
}

// familyOrder puts the payer first, then the rest of selection in order
// with duplicates dropped.
func familyOrder(payerID uuid.UUID, selection []uuid.UUID) []uuid.UUID {
	order := make([]uuid.UUID, 0, len(selection)+1)
	order = append(order, payerID)
	seen := map[uuid.UUID]bool{payerID: true}
	for _, id := range selection {
		if seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
	}
	return order
}
