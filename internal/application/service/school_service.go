package service

import (
	"context"
	"strings"

	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	infraRepo "github.com/sangkips/shulefees-api/internal/infrastructure/repository"
	"github.com/sangkips/shulefees-api/pkg/apperror"
)

// SchoolService manages the school profile printed on receipts
type SchoolService struct {
	schoolRepo repository.SchoolProfileRepository
}

// NewSchoolService creates a new school service
func NewSchoolService(schoolRepo repository.SchoolProfileRepository) *SchoolService {
	return &SchoolService{schoolRepo: schoolRepo}
}

// GetProfile returns the profile of the tenant in ctx
func (s *SchoolService) GetProfile(ctx context.Context) (*entity.SchoolProfile, error) {
	profile, err := s.schoolRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("School profile")
	}
	return profile, nil
}

// UpdateProfileInput represents the school profile fields that can change
type UpdateProfileInput struct {
	Name    *string
	Address *string
	Phone   *string
	Email   *string
	Motto   *string
}

// UpdateProfile creates or updates the school profile
func (s *SchoolService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.SchoolProfile, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.ErrTenantRequired
	}

	profile, err := s.schoolRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &entity.SchoolProfile{TenantID: tenantID}
	}

	if input.Name != nil {
		profile.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		profile.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		profile.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		profile.Email = strings.TrimSpace(*input.Email)
	}
	if input.Motto != nil {
		profile.Motto = strings.TrimSpace(*input.Motto)
	}
	if profile.Name == "" {
		return nil, apperror.NewBadRequestError("School name is required")
	}

	if err := s.schoolRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
