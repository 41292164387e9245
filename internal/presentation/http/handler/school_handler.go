package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shulefees-api/internal/application/service"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/response"
	"github.com/sangkips/shulefees-api/internal/presentation/http/middleware"
)

// SchoolHandler handles the school letterhead and preferences
type SchoolHandler struct {
	schoolService *service.SchoolService
	tenantService *service.TenantService
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(schoolService *service.SchoolService, tenantService *service.TenantService) *SchoolHandler {
	return &SchoolHandler{schoolService: schoolService, tenantService: tenantService}
}

// GetProfile returns the school profile printed on receipts
func (h *SchoolHandler) GetProfile(c *gin.Context) {
	profile, err := h.schoolService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "School profile retrieved successfully", profile)
}

// UpdateProfile edits the school profile
func (h *SchoolHandler) UpdateProfile(c *gin.Context) {
	var req request.UpdateSchoolProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.schoolService.UpdateProfile(c.Request.Context(), &service.UpdateProfileInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Motto:   req.Motto,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "School profile updated successfully", profile)
}

// GetSettings returns the school with its preferences and subscription
func (h *SchoolHandler) GetSettings(c *gin.Context) {
	tenant, err := h.tenantService.GetTenant(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings retrieved successfully", gin.H{
		"tenant":    tenant,
		"can_write": h.tenantService.CanWrite(tenant),
	})
}

// UpdateSettings edits the school's preferences
func (h *SchoolHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateSettingsInput{
		TenantID:       middleware.GetTenantID(c),
		Name:           req.Name,
		Currency:       req.Currency,
		Timezone:       req.Timezone,
		DateFormat:     req.DateFormat,
		SignatureLabel: req.SignatureLabel,
	}
	if req.ReceiptSize != nil {
		size, _ := entity.ParseReceiptSize(*req.ReceiptSize)
		input.ReceiptSize = &size
	}

	tenant, err := h.tenantService.UpdateSettings(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated successfully", tenant)
}
