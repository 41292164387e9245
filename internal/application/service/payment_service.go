package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	infraRepo "github.com/sangkips/shulefees-api/internal/infrastructure/repository"
	"github.com/sangkips/shulefees-api/pkg/apperror"
	"github.com/sangkips/shulefees-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService records fee payments
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	studentRepo repository.StudentRepository
	log         *zap.Logger
	now         func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	studentRepo repository.StudentRepository,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, studentRepo: studentRepo, log: log, now: time.Now}
}

// CreatePaymentInput represents the record payment input
type CreatePaymentInput struct {
	StudentID   uuid.UUID
	Amount      decimal.Decimal
	PaymentDate *time.Time
	Method      enum.PaymentMethod
	Reference   string
	Notes       string
	RecordedBy  uuid.UUID
}

// CreatePayment records a payment for a student. The payment date
// defaults to today.
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.ErrTenantRequired
	}

	if !input.Amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Amount must be greater than zero")
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	student, err := s.studentRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	date := s.now()
	if input.PaymentDate != nil {
		date = *input.PaymentDate
	}

	payment := &entity.Payment{
		TenantID:    tenantID,
		StudentID:   student.ID,
		Amount:      input.Amount.Round(2),
		PaymentDate: date,
		Method:      input.Method,
		Reference:   strings.TrimSpace(input.Reference),
		Notes:       strings.TrimSpace(input.Notes),
	}
	if input.RecordedBy != uuid.Nil {
		recordedBy := input.RecordedBy
		payment.RecordedBy = &recordedBy
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("student_id", student.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("method", string(payment.Method)))

	payment.Student = student
	return payment, nil
}

// GetPayment retrieves a payment with its student
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments lists payments, newest first
func (s *PaymentService) ListPayments(ctx context.Context, filter repository.PaymentFilter, params *pagination.Params) (*pagination.Result[entity.Payment], error) {
	payments, total, err := s.paymentRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(payments, params, total), nil
}

// DeletePayment deletes a payment
func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPayment(ctx, id); err != nil {
		return err
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("payment deleted", zap.String("payment_id", id.String()))
	return nil
}
