package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	infraRepo "github.com/sangkips/shulefees-api/internal/infrastructure/repository"
	"github.com/sangkips/shulefees-api/pkg/apperror"
	"github.com/sangkips/shulefees-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ClassService handles classes and their fee structures
type ClassService struct {
	classRepo repository.ClassRepository
}

// NewClassService creates a new class service
func NewClassService(classRepo repository.ClassRepository) *ClassService {
	return &ClassService{classRepo: classRepo}
}

// CreateClassInput represents the create class input
type CreateClassInput struct {
	Name        string
	Level       int
	MonthlyFee  decimal.Decimal
	AnnualFee   decimal.Decimal
	Description string
}

// CreateClass creates a new class
func (s *ClassService) CreateClass(ctx context.Context, input *CreateClassInput) (*entity.Class, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.ErrTenantRequired
	}

	name := strings.TrimSpace(input.Name)
	if err := s.ensureUniqueName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	if err := validateFees(input.MonthlyFee, input.AnnualFee); err != nil {
		return nil, err
	}

	class := &entity.Class{
		TenantID:    tenantID,
		Name:        name,
		Level:       input.Level,
		MonthlyFee:  input.MonthlyFee,
		AnnualFee:   input.AnnualFee,
		Description: input.Description,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// GetClass retrieves a class by ID
func (s *ClassService) GetClass(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperror.NewNotFoundError("Class")
	}
	return class, nil
}

// ListClasses lists classes ordered by level
func (s *ClassService) ListClasses(ctx context.Context, params *pagination.Params) (*pagination.Result[entity.Class], error) {
	classes, total, err := s.classRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(classes, params, total), nil
}

// UpdateClassInput represents the update class input
type UpdateClassInput struct {
	ID          uuid.UUID
	Name        *string
	Level       *int
	MonthlyFee  *decimal.Decimal
	AnnualFee   *decimal.Decimal
	Description *string
}

// UpdateClass updates a class
func (s *ClassService) UpdateClass(ctx context.Context, input *UpdateClassInput) (*entity.Class, error) {
	class, err := s.GetClass(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != class.Name {
			if err := s.ensureUniqueName(ctx, name, class.ID); err != nil {
				return nil, err
			}
			class.Name = name
		}
	}
	if input.Level != nil {
		class.Level = *input.Level
	}
	if input.MonthlyFee != nil {
		class.MonthlyFee = *input.MonthlyFee
	}
	if input.AnnualFee != nil {
		class.AnnualFee = *input.AnnualFee
	}
	if input.Description != nil {
		class.Description = *input.Description
	}
	if err := validateFees(class.MonthlyFee, class.AnnualFee); err != nil {
		return nil, err
	}

	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// DeleteClass deletes a class that has no students
func (s *ClassService) DeleteClass(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetClass(ctx, id); err != nil {
		return err
	}
	count, err := s.classRepo.CountStudents(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Class still has students assigned")
	}
	return s.classRepo.Delete(ctx, id)
}

func (s *ClassService) ensureUniqueName(ctx context.Context, name string, excludeID uuid.UUID) error {
	if name == "" {
		return apperror.NewBadRequestError("Class name is required")
	}
	exists, err := s.classRepo.NameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewConflictError("Class with this name already exists")
	}
	return nil
}

func validateFees(monthly, annual decimal.Decimal) error {
	if monthly.IsNegative() || annual.IsNegative() {
		return apperror.NewBadRequestError("Fees cannot be negative")
	}
	return nil
}
