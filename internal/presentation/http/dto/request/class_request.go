package request

import "github.com/shopspring/decimal"

// CreateClassRequest represents a class creation request
type CreateClassRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Level       int             `json:"level" binding:"min=0,max=20"`
	MonthlyFee  decimal.Decimal `json:"monthly_fee"`
	AnnualFee   decimal.Decimal `json:"annual_fee"`
	Description string          `json:"description" binding:"omitempty,max=500"`
}

// UpdateClassRequest represents a class update request
type UpdateClassRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Level       *int             `json:"level" binding:"omitempty,min=0,max=20"`
	MonthlyFee  *decimal.Decimal `json:"monthly_fee"`
	AnnualFee   *decimal.Decimal `json:"annual_fee"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
}
