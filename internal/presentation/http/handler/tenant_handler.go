package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shulefees-api/internal/application/service"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/response"
)

// TenantHandler handles the user's schools and the super admin console
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// ListMine returns the schools the current user belongs to
func (h *TenantHandler) ListMine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	tenants, err := h.tenantService.GetUserTenants(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Schools retrieved successfully", gin.H{"tenants": tenants})
}

// ListAllTenants returns every school (super admin)
func (h *TenantHandler) ListAllTenants(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := h.tenantService.ListAllTenants(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "Schools retrieved successfully", result)
}

// Stats returns platform wide counts (super admin)
func (h *TenantHandler) Stats(c *gin.Context) {
	stats, err := h.tenantService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Platform stats retrieved successfully", stats)
}

// UpdateSubscription changes a school's subscription (super admin)
func (h *TenantHandler) UpdateSubscription(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.UpdateSubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	tenant, err := h.tenantService.UpdateSubscription(c.Request.Context(), &service.UpdateSubscriptionInput{
		TenantID:           id,
		Status:             enum.SubscriptionStatus(req.Status),
		Plan:               req.Plan,
		TrialEndsAt:        req.TrialEndsAt,
		SubscriptionEndsAt: req.SubscriptionEndsAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Subscription updated successfully", tenant)
}

// AssignUserToTenant assigns an existing user to a school (super admin)
func (h *TenantHandler) AssignUserToTenant(c *gin.Context) {
	var req request.AssignUserToTenantRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.tenantService.AssignUserToTenant(c.Request.Context(), &service.AssignUserToTenantInput{
		TenantID: req.TenantID,
		UserID:   req.UserID,
		Role:     enum.MemberRole(req.Role),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User assigned to school successfully", nil)
}
