package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/sangkips/shulefees-api/pkg/pagination"
	"gorm.io/gorm"
)

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) domainRepo.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).Omit("Class").Create(student).Error
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).
		Scopes(TableTenantScope(ctx, "students")).
		Preload("Class").
		First(&student, "students.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &student, err
}

func (r *studentRepository) Update(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Omit("Class").Save(student).Error
}

func (r *studentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&entity.Student{}, "id = ?", id).Error
}

func (r *studentRepository) List(ctx context.Context, filter domainRepo.StudentFilter, params *pagination.Params) ([]entity.Student, int64, error) {
	var students []entity.Student
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Student{}).Scopes(TableTenantScope(ctx, "students"))

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where(
			"students.first_name ILIKE ? OR students.last_name ILIKE ? OR students.admission_number ILIKE ? OR students.guardian_phone ILIKE ?",
			like, like, like, like)
	}
	if filter.ClassID != nil {
		query = query.Where("students.class_id = ?", *filter.ClassID)
	}
	if filter.Status != "" {
		query = query.Where("students.status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := params.OrderClause(map[string]string{
		"first_name":       "students.first_name",
		"last_name":        "students.last_name",
		"admission_number": "students.admission_number",
		"created_at":       "students.created_at",
	}, "students.first_name asc, students.last_name asc")
	err := query.Preload("Class").
		Order(order).
		Offset(params.Offset()).Limit(params.PerPage).
		Find(&students).Error
	return students, total, err
}

func (r *studentRepository) ListByGuardianKey(ctx context.Context, key string) ([]entity.Student, error) {
	if key == "" {
		return []entity.Student{}, nil
	}
	var students []entity.Student
	err := r.db.WithContext(ctx).
		Scopes(TableTenantScope(ctx, "students")).
		Preload("Class").
		Where("students.guardian_key = ?", key).
		Order("students.first_name ASC, students.last_name ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepository) AdmissionNumberExists(ctx context.Context, admissionNumber string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Student{}).Scopes(TenantScope(ctx)).
		Where("admission_number = ?", admissionNumber)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
