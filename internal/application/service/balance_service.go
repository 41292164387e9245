package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/sangkips/shulefees-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// StudentBalance is what a student owes against their class fee
type StudentBalance struct {
	StudentID uuid.UUID       `json:"student_id"`
	ClassFee  decimal.Decimal `json:"class_fee"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	Balance   decimal.Decimal `json:"balance"`
}

// BalanceService computes fee balances as class fee minus everything paid.
// Balances are not clamped: overpayment shows as a negative balance.
type BalanceService struct {
	studentRepo repository.StudentRepository
	classRepo   repository.ClassRepository
	paymentRepo repository.PaymentRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(
	studentRepo repository.StudentRepository,
	classRepo repository.ClassRepository,
	paymentRepo repository.PaymentRepository,
) *BalanceService {
	return &BalanceService{
		studentRepo: studentRepo,
		classRepo:   classRepo,
		paymentRepo: paymentRepo,
	}
}

// GetStudentBalance looks up a student by id and computes their balance
func (s *BalanceService) GetStudentBalance(ctx context.Context, studentID uuid.UUID) (*StudentBalance, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}
	return s.BalanceFor(ctx, student)
}

// BalanceFor computes the balance of an already loaded student. A student
// without a class owes nothing.
func (s *BalanceService) BalanceFor(ctx context.Context, student *entity.Student) (*StudentBalance, error) {
	fee, err := s.classFee(ctx, student)
	if err != nil {
		return nil, err
	}
	paid, err := s.paymentRepo.SumByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("sum payments for student %s: %w", student.ID, err)
	}
	return &StudentBalance{
		StudentID: student.ID,
		ClassFee:  fee,
		TotalPaid: paid,
		Balance:   fee.Sub(paid),
	}, nil
}

func (s *BalanceService) classFee(ctx context.Context, student *entity.Student) (decimal.Decimal, error) {
	if student.Class != nil {
		return student.Class.TotalFee(), nil
	}
	if student.ClassID == nil {
		return decimal.Zero, nil
	}
	class, err := s.classRepo.GetByID(ctx, *student.ClassID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load class %s: %w", *student.ClassID, err)
	}
	if class == nil {
		return decimal.Zero, nil
	}
	return class.TotalFee(), nil
}
