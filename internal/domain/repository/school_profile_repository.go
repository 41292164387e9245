package repository

import (
	"context"

	"github.com/sangkips/shulefees-api/internal/domain/entity"
)

// SchoolProfileRepository stores the letterhead of the tenant in ctx
type SchoolProfileRepository interface {
	Get(ctx context.Context) (*entity.SchoolProfile, error)
	Save(ctx context.Context, profile *entity.SchoolProfile) error
}
