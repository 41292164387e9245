package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/pkg/pagination"
)

// ClassRepository defines the interface for class and fee structure data.
// Every method is scoped to the tenant carried by ctx.
type ClassRepository interface {
	Create(ctx context.Context, class *entity.Class) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Class, error)
	Update(ctx context.Context, class *entity.Class) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.Params) ([]entity.Class, int64, error)
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// CountStudents returns how many students are assigned to the class
	CountStudents(ctx context.Context, classID uuid.UUID) (int64, error)
}
