package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shulefees-api/internal/application/service"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/response"
)

// ReportHandler serves spreadsheet and PDF exports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// PaymentsExcel downloads the filtered payments as xlsx
func (h *ReportHandler) PaymentsExcel(c *gin.Context) {
	filter, ok := paymentFilter(c)
	if !ok {
		return
	}
	file, err := h.reportService.PaymentsExcel(c.Request.Context(), filter)
	attachment(c, file, err)
}

// PaymentsPDF downloads the filtered payments as a PDF table
func (h *ReportHandler) PaymentsPDF(c *gin.Context) {
	filter, ok := paymentFilter(c)
	if !ok {
		return
	}
	file, err := h.reportService.PaymentsPDF(c.Request.Context(), filter)
	attachment(c, file, err)
}

// BalancesExcel downloads every active student's balance as xlsx
func (h *ReportHandler) BalancesExcel(c *gin.Context) {
	file, err := h.reportService.BalancesExcel(c.Request.Context())
	attachment(c, file, err)
}

func attachment(c *gin.Context, file *service.ReportFile, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
