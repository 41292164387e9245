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

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *gorm.DB) domainRepo.ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *entity.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	var class entity.Class
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).First(&class, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &class, err
}

func (r *classRepository) Update(ctx context.Context, class *entity.Class) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Save(class).Error
}

func (r *classRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&entity.Class{}, "id = ?", id).Error
}

func (r *classRepository) List(ctx context.Context, params *pagination.Params) ([]entity.Class, int64, error) {
	var classes []entity.Class
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Class{}).Scopes(TenantScope(ctx))
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := params.OrderClause(map[string]string{
		"name":       "name",
		"level":      "level",
		"annual_fee": "annual_fee",
	}, "level asc, name asc")
	err := query.Order(order).Offset(params.Offset()).Limit(params.PerPage).Find(&classes).Error
	return classes, total, err
}

func (r *classRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Class{}).Scopes(TenantScope(ctx)).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *classRepository) CountStudents(ctx context.Context, classID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Student{}).Scopes(TenantScope(ctx)).
		Where("class_id = ?", classID).
		Count(&count).Error
	return count, err
}
