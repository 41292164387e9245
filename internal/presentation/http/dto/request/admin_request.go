package request

import (
	"time"

	"github.com/google/uuid"
)

// UpdateSubscriptionRequest changes a school's plan from the admin console
type UpdateSubscriptionRequest struct {
	Status             string     `json:"status" binding:"required,oneof=trial active expired cancelled"`
	Plan               *string    `json:"plan" binding:"omitempty,max=50"`
	TrialEndsAt        *time.Time `json:"trial_ends_at"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at"`
}

// AssignUserToTenantRequest adds an existing user to a school
type AssignUserToTenantRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	Role     string    `json:"role" binding:"omitempty,oneof=owner admin member"`
}
