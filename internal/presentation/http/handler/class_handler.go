package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shulefees-api/internal/application/service"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/response"
)

// ClassHandler handles class and fee structure requests
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new class handler
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// List handles listing classes
func (h *ClassHandler) List(c *gin.Context) {
	params, ok := pageParams(c)
	if !ok {
		return
	}
	result, err := h.classService.ListClasses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "Classes retrieved successfully", result)
}

// Create handles creating a class
func (h *ClassHandler) Create(c *gin.Context) {
	var req request.CreateClassRequest
	if !bindJSON(c, &req) {
		return
	}

	class, err := h.classService.CreateClass(c.Request.Context(), &service.CreateClassInput{
		Name:        req.Name,
		Level:       req.Level,
		MonthlyFee:  req.MonthlyFee,
		AnnualFee:   req.AnnualFee,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Class created successfully", class)
}

// Get handles getting a single class
func (h *ClassHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	class, err := h.classService.GetClass(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Class retrieved successfully", class)
}

// Update handles updating a class
func (h *ClassHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.UpdateClassRequest
	if !bindJSON(c, &req) {
		return
	}

	class, err := h.classService.UpdateClass(c.Request.Context(), &service.UpdateClassInput{
		ID:          id,
		Name:        req.Name,
		Level:       req.Level,
		MonthlyFee:  req.MonthlyFee,
		AnnualFee:   req.AnnualFee,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Class updated successfully", class)
}

// Delete handles deleting a class
func (h *ClassHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.classService.DeleteClass(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Class deleted successfully", nil)
}
