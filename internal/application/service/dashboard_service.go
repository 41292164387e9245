package service

import (
	"context"
	"time"

	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo, now: time.Now}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalStudents       int64                   `json:"total_students"`
	ActiveStudents      int64                   `json:"active_students"`
	TotalCollected      decimal.Decimal         `json:"total_collected"`
	TotalPayments       int64                   `json:"total_payments"`
	MonthlyCollected    decimal.Decimal         `json:"monthly_collected"`
	MonthlyPayments     int64                   `json:"monthly_payments"`
	CollectionGrowth    float64                 `json:"collection_growth"`
	OutstandingBalance  decimal.Decimal         `json:"outstanding_balance"`
	StudentsWithBalance int64                   `json:"students_with_balance"`
	DailyCollections    []DailyCollectionPoint  `json:"daily_collections"`
	MethodCollections   []MethodCollectionPoint `json:"method_collections"`
}

// DailyCollectionPoint represents one day of collections
type DailyCollectionPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Count  int64           `json:"count"`
}

// MethodCollectionPoint represents collections through one payment method
type MethodCollectionPoint struct {
	Method string          `json:"method"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Count  int64           `json:"count"`
}

// GetDashboardStats returns dashboard statistics for the tenant in ctx
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalStudents, err = s.analyticsRepo.CountStudents(ctx, ""); err != nil {
		return nil, err
	}
	if stats.ActiveStudents, err = s.analyticsRepo.CountStudents(ctx, string(enum.StudentStatusActive)); err != nil {
		return nil, err
	}
	if stats.TotalCollected, stats.TotalPayments, err = s.analyticsRepo.TotalCollected(ctx, time.Time{}, time.Time{}); err != nil {
		return nil, err
	}

	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, -1)
	if stats.MonthlyCollected, stats.MonthlyPayments, err = s.analyticsRepo.TotalCollected(ctx, startOfMonth, endOfMonth); err != nil {
		return nil, err
	}
	lastMonth, _, err := s.analyticsRepo.TotalCollected(ctx, startOfMonth.AddDate(0, -1, 0), startOfMonth.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	stats.CollectionGrowth = growth(stats.MonthlyCollected, lastMonth)

	balances, err := s.analyticsRepo.StudentBalances(ctx)
	if err != nil {
		return nil, err
	}
	stats.OutstandingBalance = decimal.Zero
	for _, b := range balances {
		if owed := studentBalance(b); owed.IsPositive() {
			stats.OutstandingBalance = stats.OutstandingBalance.Add(owed)
			stats.StudentsWithBalance++
		}
	}

	daily, err := s.analyticsRepo.DailyCollections(ctx, 7)
	if err != nil {
		return nil, err
	}
	stats.DailyCollections = make([]DailyCollectionPoint, 0, len(daily))
	for _, d := range daily {
		stats.DailyCollections = append(stats.DailyCollections, DailyCollectionPoint{
			Date:   d.Date.Format("Jan 02"),
			Amount: d.Amount,
			Count:  d.Count,
		})
	}

	methods, err := s.analyticsRepo.CollectionsByMethod(ctx)
	if err != nil {
		return nil, err
	}
	stats.MethodCollections = make([]MethodCollectionPoint, 0, len(methods))
	for _, m := range methods {
		stats.MethodCollections = append(stats.MethodCollections, MethodCollectionPoint{
			Method: m.Method,
			Label:  enum.PaymentMethod(m.Method).Label(),
			Amount: m.Amount,
			Count:  m.Count,
		})
	}

	return stats, nil
}

// aggregatedFee applies the class fee rule to an aggregated row
func aggregatedFee(b repository.StudentBalanceResult) decimal.Decimal {
	class := entity.Class{MonthlyFee: b.MonthlyFee, AnnualFee: b.AnnualFee}
	return class.TotalFee()
}

func studentBalance(b repository.StudentBalanceResult) decimal.Decimal {
	return aggregatedFee(b).Sub(b.TotalPaid)
}

// growth is the percentage change from previous to current, rounded to
// one decimal place. Growth from nothing counts as 100%.
func growth(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	pct := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1)
	return pct.InexactFloat64()
}
