package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDashboardService_Stats(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeAnalyticsRepo{
		total: func(from, to time.Time) (decimal.Decimal, int64) {
			switch {
			case from.IsZero():
				return dec(90000), 9
			case from.Month() == time.March:
				return dec(30000), 3
			default:
				return dec(20000), 2
			}
		},
		students: map[string]int64{"": 12, "active": 10},
		daily: []repository.DailyCollectionResult{
			{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Amount: dec(1000), Count: 1},
		},
		methods: []repository.MethodCollectionResult{{Method: "mpesa", Amount: dec(5000), Count: 2}},
		balances: []repository.StudentBalanceResult{
			{AnnualFee: dec(20000), TotalPaid: dec(15000)},
			{MonthlyFee: dec(250), TotalPaid: decimal.Zero},
			{AnnualFee: dec(1000), TotalPaid: dec(5000)},
		},
	}
	svc := NewDashboardService(repo)
	svc.now = func() time.Time { return now }

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.TotalStudents)
	assert.Equal(t, int64(10), stats.ActiveStudents)
	assert.True(t, dec(90000).Equal(stats.TotalCollected))
	assert.True(t, dec(30000).Equal(stats.MonthlyCollected))
	assert.Equal(t, 50.0, stats.CollectionGrowth)
	assert.True(t, dec(8000).Equal(stats.OutstandingBalance), "overpaid students do not reduce the outstanding total")
	assert.Equal(t, int64(2), stats.StudentsWithBalance)
	require.Len(t, stats.DailyCollections, 1)
	assert.Equal(t, "Mar 14", stats.DailyCollections[0].Date)
	require.Len(t, stats.MethodCollections, 1)
	assert.Equal(t, "M-Pesa", stats.MethodCollections[0].Label)
}

func TestDashboardService_Error(t *testing.T) {
	svc := NewDashboardService(&fakeAnalyticsRepo{failTotal: true})
	_, err := svc.GetDashboardStats(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestGrowth(t *testing.T) {
	assert.Equal(t, 0.0, growth(decimal.Zero, decimal.Zero))
	assert.Equal(t, 100.0, growth(dec(5), decimal.Zero))
	assert.Equal(t, -25.0, growth(dec(75), dec(100)))
	assert.Equal(t, 33.3, growth(dec(4), dec(3)))
}

func TestReportService_Exports(t *testing.T) {
	env := newReceiptEnv(t, testReceiptConfig())
	analytics := &fakeAnalyticsRepo{balances: []repository.StudentBalanceResult{
		{FirstName: "Jane", LastName: "Doe", AdmissionNumber: strPtr("ADM-001"), ClassName: "Grade 5", AnnualFee: dec(20000), TotalPaid: dec(15000)},
	}}
	tenants := env.svc.tenantRepo
	svc := NewReportService(env.payments, analytics, env.school, tenants, "KES")
	svc.now = func() time.Time { return time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC) }

	xlsx, err := svc.PaymentsExcel(env.ctx, repository.PaymentFilter{})
	require.NoError(t, err)
	assert.Equal(t, "payments-20250201.xlsx", xlsx.Name)
	assert.Equal(t, ContentTypeXLSX, xlsx.ContentType)

	book, err := excelize.OpenReader(strings.NewReader(string(xlsx.Data)))
	require.NoError(t, err)
	defer book.Close()
	title, err := book.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Academy", title)
	student, err := book.GetCellValue("Report", "B7")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", student)
	method, err := book.GetCellValue("Report", "E7")
	require.NoError(t, err)
	assert.Equal(t, "M-Pesa", method)
	total, err := book.GetCellValue("Report", "A8")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)

	pdf, err := svc.PaymentsPDF(env.ctx, repository.PaymentFilter{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf.Data), "%PDF"))
	assert.Equal(t, ContentTypePDF, pdf.ContentType)

	balances, err := svc.BalancesExcel(env.ctx)
	require.NoError(t, err)
	bookB, err := excelize.OpenReader(strings.NewReader(string(balances.Data)))
	require.NoError(t, err)
	defer bookB.Close()
	bal, err := bookB.GetCellValue("Report", "F7", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "5000", bal)
}
