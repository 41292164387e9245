package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shulefees-api/internal/application/service"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles fee payment requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// paymentFilter binds the shared payment query parameters
func paymentFilter(c *gin.Context) (repository.PaymentFilter, bool) {
	var req request.PaymentFilterRequest
	if !bindQuery(c, &req) {
		return repository.PaymentFilter{}, false
	}
	filter := repository.PaymentFilter{
		StudentID: parseOptionalUUID(req.StudentID),
		From:      parseDate(req.From),
		To:        parseDate(req.To),
	}
	if req.Method != "" {
		filter.Method = string(enum.ParsePaymentMethod(req.Method))
	}
	return filter, true
}

// List handles listing payments
func (h *PaymentHandler) List(c *gin.Context) {
	filter, ok := paymentFilter(c)
	if !ok {
		return
	}
	params, ok := pageParams(c)
	if !ok {
		return
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), filter, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "Payments retrieved successfully", result)
}

// Create records a payment
// @Summary Record payment
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for retried requests"
// @Param request body request.CreatePaymentRequest true "Payment"
// @Success 201 {object} response.APIResponse
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), &service.CreatePaymentInput{
		StudentID:   req.StudentID,
		Amount:      req.Amount,
		PaymentDate: parseDate(req.PaymentDate),
		Method:      enum.ParsePaymentMethod(req.Method),
		Reference:   req.Reference,
		Notes:       req.Notes,
		RecordedBy:  *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Payment recorded successfully", payment)
}

// Get handles getting a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment retrieved successfully", payment)
}

// Delete handles deleting a payment
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.paymentService.DeletePayment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment deleted successfully", nil)
}
