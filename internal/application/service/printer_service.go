package service

import (
	"context"
	"fmt"

	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/infrastructure/render"
	"github.com/sangkips/shulefees-api/pkg/printer"
	"go.uber.org/zap"
)

// PrinterService sends receipts to the configured thermal printer.
type PrinterService struct {
	printer   printer.Printer
	charWidth int
	log       *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, charWidth int, log *zap.Logger) *PrinterService {
	if charWidth <= 0 {
		charWidth = 48
	}
	return &PrinterService{printer: p, charWidth: charWidth, log: log}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	CharWidth  int    `json:"char_width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{
		Configured: kind != "none",
		Connected:  s.printer.IsConnected(ctx),
		Type:       kind,
		CharWidth:  s.charWidth,
	}
}

// PrintReceipt renders the receipt as ESC/POS and sends it to the printer.
func (s *PrinterService) PrintReceipt(ctx context.Context, data entity.ReceiptData) error {
	job := render.RenderThermal(data, s.charWidth)
	if err := s.printer.Print(ctx, job); err != nil {
		s.log.Warn("thermal print failed",
			zap.String("receipt_number", data.ReceiptNumber),
			zap.String("printer", s.printer.Kind()),
			zap.Error(err))
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}
