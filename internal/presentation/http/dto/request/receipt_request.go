package request

import "github.com/google/uuid"

// OpenReceiptSessionRequest starts a receipt session for a payment
type OpenReceiptSessionRequest struct {
	PaymentID uuid.UUID `json:"payment_id" binding:"required"`
	Mode      string    `json:"mode" binding:"omitempty,oneof=individual family"`
	Size      string    `json:"size" binding:"omitempty,receipt_size"`
}

// UpdateReceiptSessionRequest edits an open receipt session
type UpdateReceiptSessionRequest struct {
	Mode           *string `json:"mode" binding:"omitempty,oneof=individual family"`
	Size           *string `json:"size" binding:"omitempty,receipt_size"`
	PaymentDate    *string `json:"payment_date" binding:"omitempty,max=50"`
	AmountInWords  *string `json:"amount_in_words" binding:"omitempty,max=255"`
	Notes          *string `json:"notes" binding:"omitempty,max=500"`
	SignatureLabel *string `json:"signature_label" binding:"omitempty,max=100"`
}
