package repository

import (
	"context"
	"errors"

	"github.com/sangkips/shulefees-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shulefees-api/internal/domain/repository"
	"gorm.io/gorm"
)

type schoolProfileRepository struct {
	db *gorm.DB
}

// NewSchoolProfileRepository creates a new school profile repository
func NewSchoolProfileRepository(db *gorm.DB) domainRepo.SchoolProfileRepository {
	return &schoolProfileRepository{db: db}
}

func (r *schoolProfileRepository) Get(ctx context.Context) (*entity.SchoolProfile, error) {
	var profile entity.SchoolProfile
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *schoolProfileRepository) Save(ctx context.Context, profile *entity.SchoolProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
