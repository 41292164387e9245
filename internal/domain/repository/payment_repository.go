package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PaymentFilter narrows payment listings and reports
type PaymentFilter struct {
	StudentID *uuid.UUID
	From      *time.Time
	To        *time.Time
	Method    string
}

// PaymentRepository defines the interface for payment data operations.
// Every method is scoped to the tenant carried by ctx.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error

	// GetByID retrieves a payment with its student and class preloaded
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter PaymentFilter, params *pagination.Params) ([]entity.Payment, int64, error)

	// ListAll returns every matching payment, oldest first, for exports
	ListAll(ctx context.Context, filter PaymentFilter) ([]entity.Payment, error)

	// SumByStudent returns the total ever paid for a student
	SumByStudent(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error)
}
