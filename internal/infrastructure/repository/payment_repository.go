package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/sangkips/shulefees-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Omit("Student").Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).
		Scopes(TableTenantScope(ctx, "payments")).
		Preload("Student.Class").
		First(&payment, "payments.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&entity.Payment{}, "id = ?", id).Error
}

func (r *paymentRepository) filtered(ctx context.Context, filter domainRepo.PaymentFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Payment{}).Scopes(TableTenantScope(ctx, "payments"))
	if filter.StudentID != nil {
		query = query.Where("payments.student_id = ?", *filter.StudentID)
	}
	if filter.From != nil {
		query = query.Where("payments.payment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("payments.payment_date <= ?", *filter.To)
	}
	if filter.Method != "" {
		query = query.Where("payments.method = ?", filter.Method)
	}
	return query
}

func (r *paymentRepository) List(ctx context.Context, filter domainRepo.PaymentFilter, params *pagination.Params) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := r.filtered(ctx, filter)
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Joins("JOIN students ON students.id = payments.student_id").
			Where("payments.reference ILIKE ? OR students.first_name ILIKE ? OR students.last_name ILIKE ? OR students.admission_number ILIKE ?",
				like, like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := params.OrderClause(map[string]string{
		"payment_date": "payments.payment_date",
		"amount":       "payments.amount",
		"created_at":   "payments.created_at",
	}, "payments.payment_date desc, payments.created_at desc")
	err := query.Preload("Student.Class").
		Order(order).
		Offset(params.Offset()).Limit(params.PerPage).
		Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepository) ListAll(ctx context.Context, filter domainRepo.PaymentFilter) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.filtered(ctx, filter).
		Preload("Student.Class").
		Order("payments.payment_date ASC, payments.created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) SumByStudent(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&entity.Payment{}).
		Scopes(TenantScope(ctx)).
		Where("student_id = ?", studentID).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments for student %s: %w", studentID, err)
	}
	return total, nil
}
