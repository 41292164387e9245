package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyCollectionResult is the amount collected on one day
type DailyCollectionResult struct {
	Date   time.Time
	Amount decimal.Decimal
	Count  int64
}

// MethodCollectionResult is the amount collected through one payment method
type MethodCollectionResult struct {
	Method string
	Amount decimal.Decimal
	Count  int64
}

// StudentBalanceResult is a student's fee and total paid
type StudentBalanceResult struct {
	StudentID       uuid.UUID
	FirstName       string
	LastName        string
	AdmissionNumber *string
	ClassName       string
	MonthlyFee      decimal.Decimal
	AnnualFee       decimal.Decimal
	TotalPaid       decimal.Decimal
}

// AnalyticsRepository defines aggregation queries for dashboards and reports
type AnalyticsRepository interface {
	// TotalCollected returns the sum of payments between from and to (inclusive);
	// zero times mean unbounded
	TotalCollected(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error)

	// DailyCollections returns per-day totals for the last n days
	DailyCollections(ctx context.Context, days int) ([]DailyCollectionResult, error)

	// CollectionsByMethod groups all payments by method
	CollectionsByMethod(ctx context.Context) ([]MethodCollectionResult, error)

	// CountStudents returns the number of students with the given status ("" for all)
	CountStudents(ctx context.Context, status string) (int64, error)

	// StudentBalances returns fee and paid totals for every active student
	StudentBalances(ctx context.Context) ([]StudentBalanceResult, error)
}
