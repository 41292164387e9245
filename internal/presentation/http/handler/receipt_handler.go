package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shulefees-api/internal/application/service"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt sessions and their renderings
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Sizes lists the paper sizes a receipt can be laid out on
func (h *ReceiptHandler) Sizes(c *gin.Context) {
	response.OK(c, "Receipt sizes retrieved successfully", h.receiptService.ReceiptSizes())
}

// Open starts a receipt session for a payment
// @Summary Open receipt session
// @Tags receipts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.OpenReceiptSessionRequest true "Payment and optional mode and size"
// @Success 201 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /receipts/sessions [post]
func (h *ReceiptHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	var req request.OpenReceiptSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.OpenReceiptSessionInput{PaymentID: req.PaymentID, UserID: *userID}
	if req.Mode != "" {
		mode := enum.ReceiptMode(req.Mode)
		input.Mode = &mode
	}
	if req.Size != "" {
		size, _ := entity.ParseReceiptSize(req.Size)
		input.Size = &size
	}

	view, err := h.receiptService.OpenSession(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Receipt session opened", view)
}

// Get returns the session with its current receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	view, err := h.receiptService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt session retrieved successfully", view)
}

// Update changes mode, size or editable fields
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.UpdateReceiptSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateReceiptSessionInput{
		PaymentDate:    req.PaymentDate,
		AmountInWords:  req.AmountInWords,
		Notes:          req.Notes,
		SignatureLabel: req.SignatureLabel,
	}
	if req.Mode != nil {
		mode := enum.ReceiptMode(*req.Mode)
		input.Mode = &mode
	}
	if req.Size != nil {
		size, _ := entity.ParseReceiptSize(*req.Size)
		input.Size = &size
	}

	view, err := h.receiptService.UpdateSession(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt session updated", view)
}

// ToggleStudent adds or removes a sibling from a family receipt
func (h *ReceiptHandler) ToggleStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	studentID, ok := paramID(c, "student_id")
	if !ok {
		return
	}
	view, err := h.receiptService.ToggleStudent(c.Request.Context(), id, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt session updated", view)
}

// Close discards the session
func (h *ReceiptHandler) Close(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.receiptService.CloseSession(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Preview returns the on-screen layout model
func (h *ReceiptHandler) Preview(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	preview, err := h.receiptService.Preview(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt preview generated", preview)
}

// Print returns a standalone HTML page that prints itself
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	doc, err := h.receiptService.PrintHTML(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

// PDF downloads the receipt as Receipt-<number>.pdf
func (h *ReceiptHandler) PDF(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	doc, name, err := h.receiptService.PDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// Thermal sends the receipt to the thermal printer
func (h *ReceiptHandler) Thermal(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := h.receiptService.PrintThermal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Printed {
		// The receipt is still returned so the client can fall back to PDF
		response.OK(c, "Receipt generated but printing failed", result)
		return
	}
	response.OK(c, "Receipt sent to printer", result)
}
