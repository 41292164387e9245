package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/sangkips/shulefees-api/pkg/apperror"
	"github.com/sangkips/shulefees-api/pkg/pagination"
	"go.uber.org/zap"
)

// TenantService handles school tenant lookups, memberships and the
// super admin subscription console
type TenantService struct {
	tenantRepo repository.TenantRepository
	userRepo   repository.UserRepository
	log        *zap.Logger
	now        func() time.Time
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo repository.TenantRepository, userRepo repository.UserRepository, log *zap.Logger) *TenantService {
	return &TenantService{tenantRepo: tenantRepo, userRepo: userRepo, log: log, now: time.Now}
}

// GetTenant retrieves a tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("School")
	}
	return tenant, nil
}

// ResolveBySlug finds the tenant addressed by a subdomain or X-Tenant header
func (s *TenantService) ResolveBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, apperror.ErrTenantRequired
	}
	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("School")
	}
	return tenant, nil
}

// IsMember reports whether the user belongs to the tenant
func (s *TenantService) IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	return s.tenantRepo.IsMember(ctx, tenantID, userID)
}

// CanWrite reports whether the tenant's trial or subscription still allows changes
func (s *TenantService) CanWrite(tenant *entity.Tenant) bool {
	return tenant.CanWrite(s.now())
}

// GetUserTenants retrieves all schools a user belongs to
func (s *TenantService) GetUserTenants(ctx context.Context, userID uuid.UUID) ([]entity.Tenant, error) {
	return s.tenantRepo.GetUserTenants(ctx, userID)
}

// UpdateSettingsInput represents the school preferences a tenant admin may change
type UpdateSettingsInput struct {
	TenantID       uuid.UUID
	Name           *string
	Currency       *string
	Timezone       *string
	DateFormat     *string
	ReceiptSize    *entity.ReceiptSize
	SignatureLabel *string
}

// UpdateSettings updates the tenant name and preferences
func (s *TenantService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.Tenant, error) {
	tenant, err := s.GetTenant(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		tenant.Name = strings.TrimSpace(*input.Name)
	}
	if input.Currency != nil {
		tenant.Settings.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	if input.Timezone != nil {
		tenant.Settings.Timezone = *input.Timezone
	}
	if input.DateFormat != nil {
		tenant.Settings.DateFormat = *input.DateFormat
	}
	if input.ReceiptSize != nil {
		if !input.ReceiptSize.IsValid() {
			return nil, apperror.NewBadRequestError("receipt size must be one of A7, A6, A5, A4")
		}
		tenant.Settings.ReceiptSize = string(*input.ReceiptSize)
	}
	if input.SignatureLabel != nil {
		tenant.Settings.SignatureLabel = *input.SignatureLabel
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// ListAllTenants retrieves all tenants (for super admin use)
func (s *TenantService) ListAllTenants(ctx context.Context, params *pagination.Params) (*pagination.Result[entity.Tenant], error) {
	tenants, total, err := s.tenantRepo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(tenants, params, total), nil
}

// PlatformStats summarises every school for the super admin console
type PlatformStats struct {
	TotalSchools int64                             `json:"total_schools"`
	TotalUsers   int64                             `json:"total_users"`
	ByStatus     map[enum.SubscriptionStatus]int64 `json:"by_status"`
}

// GetStats returns platform wide counts
func (s *TenantService) GetStats(ctx context.Context) (*PlatformStats, error) {
	byStatus, err := s.tenantRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &PlatformStats{TotalUsers: users, ByStatus: byStatus}
	for _, n := range byStatus {
		stats.TotalSchools += n
	}
	return stats, nil
}

// UpdateSubscriptionInput represents a super admin change to a school's plan
type UpdateSubscriptionInput struct {
	TenantID           uuid.UUID
	Status             enum.SubscriptionStatus
	Plan               *string
	TrialEndsAt        *time.Time
	SubscriptionEndsAt *time.Time
}

// UpdateSubscription changes a school's subscription status and dates
func (s *TenantService) UpdateSubscription(ctx context.Context, input *UpdateSubscriptionInput) (*entity.Tenant, error) {
	if !input.Status.IsValid() {
		return nil, apperror.NewBadRequestError("invalid subscription status")
	}
	tenant, err := s.GetTenant(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	tenant.SubscriptionStatus = input.Status
	if input.Plan != nil {
		tenant.Plan = *input.Plan
	}
	if input.TrialEndsAt != nil {
		tenant.TrialEndsAt = input.TrialEndsAt
	}
	if input.SubscriptionEndsAt != nil {
		tenant.SubscriptionEndsAt = input.SubscriptionEndsAt
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.log.Info("subscription updated",
		zap.String("tenant", tenant.Slug),
		zap.String("status", string(tenant.SubscriptionStatus)))
	return tenant, nil
}

// AssignUserToTenantInput represents input for assigning a user to a tenant
type AssignUserToTenantInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Role     enum.MemberRole
}

// AssignUserToTenant assigns a user to a tenant (for super admin use)
func (s *TenantService) AssignUserToTenant(ctx context.Context, input *AssignUserToTenantInput) error {
	if _, err := s.GetTenant(ctx, input.TenantID); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	isMember, err := s.tenantRepo.IsMember(ctx, input.TenantID, input.UserID)
	if err != nil {
		return err
	}
	if isMember {
		return apperror.NewConflictError("User is already a member of this school")
	}

	role := input.Role
	if role == "" {
		role = enum.MemberRoleMember
	}
	if !role.IsValid() {
		return apperror.NewBadRequestError("invalid member role")
	}

	return s.tenantRepo.AddMember(ctx, &entity.TenantMembership{
		TenantID: input.TenantID,
		UserID:   input.UserID,
		Role:     role,
	})
}
