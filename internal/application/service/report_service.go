package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/shulefees-api/internal/domain/repository"
	infraRepo "github.com/sangkips/shulefees-api/internal/infrastructure/repository"
	"github.com/sangkips/shulefees-api/internal/infrastructure/render"
	"github.com/sangkips/shulefees-api/pkg/apperror"
)

// Report content types
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// ReportFile is a generated export ready to be sent as an attachment
type ReportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReportService builds spreadsheet and PDF exports
type ReportService struct {
	paymentRepo   repository.PaymentRepository
	analyticsRepo repository.AnalyticsRepository
	schoolRepo    repository.SchoolProfileRepository
	tenantRepo    repository.TenantRepository
	currency      string
	now           func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	paymentRepo repository.PaymentRepository,
	analyticsRepo repository.AnalyticsRepository,
	schoolRepo repository.SchoolProfileRepository,
	tenantRepo repository.TenantRepository,
	currency string,
) *ReportService {
	return &ReportService{
		paymentRepo:   paymentRepo,
		analyticsRepo: analyticsRepo,
		schoolRepo:    schoolRepo,
		tenantRepo:    tenantRepo,
		currency:      currency,
		now:           time.Now,
	}
}

// PaymentsExcel exports the filtered payments as xlsx
func (s *ReportService) PaymentsExcel(ctx context.Context, filter repository.PaymentFilter) (*ReportFile, error) {
	meta, rows, err := s.paymentRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := render.PaymentsWorkbook(meta, rows)
	if err != nil {
		return nil, err
	}
	return &ReportFile{Name: s.fileName("payments", "xlsx"), ContentType: ContentTypeXLSX, Data: data}, nil
}

// PaymentsPDF exports the filtered payments as a PDF table
func (s *ReportService) PaymentsPDF(ctx context.Context, filter repository.PaymentFilter) (*ReportFile, error) {
	meta, rows, err := s.paymentRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := render.PaymentsPDF(meta, rows)
	if err != nil {
		return nil, err
	}
	return &ReportFile{Name: s.fileName("payments", "pdf"), ContentType: ContentTypePDF, Data: data}, nil
}

// BalancesExcel exports every active student's fee, paid total and balance
func (s *ReportService) BalancesExcel(ctx context.Context) (*ReportFile, error) {
	meta, err := s.meta(ctx, "Student Balances", "As at "+s.now().Format("02/01/2006"))
	if err != nil {
		return nil, err
	}
	results, err := s.analyticsRepo.StudentBalances(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]render.BalanceRow, 0, len(results))
	for _, b := range results {
		fee := aggregatedFee(b)
		rows = append(rows, render.BalanceRow{
			StudentName:     strings.TrimSpace(b.FirstName + " " + b.LastName),
			AdmissionNumber: derefOr(b.AdmissionNumber, ""),
			ClassName:       b.ClassName,
			Fee:             fee,
			Paid:            b.TotalPaid,
			Balance:         fee.Sub(b.TotalPaid),
		})
	}
	data, err := render.BalancesWorkbook(meta, rows)
	if err != nil {
		return nil, err
	}
	return &ReportFile{Name: s.fileName("balances", "xlsx"), ContentType: ContentTypeXLSX, Data: data}, nil
}

func (s *ReportService) paymentRows(ctx context.Context, filter repository.PaymentFilter) (render.ReportMeta, []render.PaymentRow, error) {
	meta, err := s.meta(ctx, "Payments Report", periodLabel(filter.From, filter.To))
	if err != nil {
		return meta, nil, err
	}
	payments, err := s.paymentRepo.ListAll(ctx, filter)
	if err != nil {
		return meta, nil, err
	}
	rows := make([]render.PaymentRow, 0, len(payments))
	for _, p := range payments {
		row := render.PaymentRow{
			Date:      p.PaymentDate,
			Method:    p.Method.Label(),
			Reference: p.Reference,
			Amount:    p.Amount,
		}
		if p.Student != nil {
			row.StudentName = p.Student.FullName()
			row.AdmissionNumber = derefOr(p.Student.AdmissionNumber, "")
			row.ClassName = p.Student.ClassName()
		}
		rows = append(rows, row)
	}
	return meta, rows, nil
}

func (s *ReportService) meta(ctx context.Context, title, period string) (render.ReportMeta, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return render.ReportMeta{}, apperror.ErrTenantRequired
	}
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return render.ReportMeta{}, err
	}
	meta := render.ReportMeta{
		Title:       title,
		Period:      period,
		Currency:    tenant.Currency(s.currency),
		GeneratedAt: s.now(),
	}
	if tenant != nil {
		meta.SchoolName = tenant.Name
	}
	profile, err := s.schoolRepo.Get(ctx)
	if err != nil {
		return render.ReportMeta{}, err
	}
	if profile != nil && profile.Name != "" {
		meta.SchoolName = profile.Name
	}
	return meta, nil
}

func (s *ReportService) fileName(kind, ext string) string {
	return fmt.Sprintf("%s-%s.%s", kind, s.now().Format("20060102"), ext)
}

func periodLabel(from, to *time.Time) string {
	const layout = "02/01/2006"
	switch {
	case from != nil && to != nil:
		return from.Format(layout) + " - " + to.Format(layout)
	case from != nil:
		return "From " + from.Format(layout)
	case to != nil:
		return "Up to " + to.Format(layout)
	default:
		return "All time"
	}
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
