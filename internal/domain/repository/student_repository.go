package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/pkg/pagination"
)

// StudentFilter narrows student listings
type StudentFilter struct {
	ClassID *uuid.UUID
	Status  string
}

// StudentRepository defines the interface for student data operations.
// Every method is scoped to the tenant carried by ctx.
type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error

	// GetByID retrieves a student with its class preloaded
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	Update(ctx context.Context, student *entity.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter StudentFilter, params *pagination.Params) ([]entity.Student, int64, error)

	// ListByGuardianKey returns every student whose normalized guardian
	// phone equals key, classes preloaded, ordered by name
	ListByGuardianKey(ctx context.Context, key string) ([]entity.Student, error)
	AdmissionNumberExists(ctx context.Context, admissionNumber string, excludeID uuid.UUID) (bool, error)
}
