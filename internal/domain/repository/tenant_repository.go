package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/pkg/pagination"
)

// TenantRepository defines the interface for school tenant data operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)

	// GetBySlug retrieves a tenant by slug (subdomain identifier)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error

	// GetUserTenants retrieves all schools a user belongs to
	GetUserTenants(ctx context.Context, userID uuid.UUID) ([]entity.Tenant, error)
	AddMember(ctx context.Context, membership *entity.TenantMembership) error
	IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)
	GetMembership(ctx context.Context, tenantID, userID uuid.UUID) (*entity.TenantMembership, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListAll retrieves every school (super admin console)
	ListAll(ctx context.Context, params *pagination.Params) ([]entity.Tenant, int64, error)

	// CountByStatus returns the number of schools per subscription status
	CountByStatus(ctx context.Context) (map[enum.SubscriptionStatus]int64, error)
}
