package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of date-only fields
const DateLayout = "2006-01-02"

// CreatePaymentRequest records a fee payment
type CreatePaymentRequest struct {
	StudentID   uuid.UUID       `json:"student_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	Method      string          `json:"payment_method" binding:"required,payment_method"`
	Reference   string          `json:"reference" binding:"omitempty,max=100"`
	Notes       string          `json:"notes" binding:"omitempty,max=1000"`
}

// PaymentFilterRequest narrows payment listings and exports
type PaymentFilterRequest struct {
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Method    string `form:"payment_method" binding:"omitempty,payment_method"`
}
