package repository

import (
	"context"
	"time"

	"github.com/sangkips/shulefees-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) payments(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.Payment{}).Scopes(TenantScope(ctx))
}

func (r *analyticsRepository) TotalCollected(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	query := r.payments(ctx)
	if !from.IsZero() {
		query = query.Where("payment_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("payment_date <= ?", to)
	}

	var total decimal.Decimal
	var count int64
	row := query.Select("COALESCE(SUM(amount), 0), COUNT(*)").Row()
	if err := row.Scan(&total, &count); err != nil {
		return decimal.Zero, 0, err
	}
	return total, count, nil
}

func (r *analyticsRepository) DailyCollections(ctx context.Context, days int) ([]domainRepo.DailyCollectionResult, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))

	var rows []domainRepo.DailyCollectionResult
	err := r.payments(ctx).
		Select("payment_date AS date, COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count").
		Where("payment_date >= ?", start).
		Group("payment_date").
		Order("payment_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// fill days without payments so charts get a continuous series
	byDay := make(map[string]domainRepo.DailyCollectionResult, len(rows))
	for _, row := range rows {
		byDay[row.Date.Format("2006-01-02")] = row
	}
	results := make([]domainRepo.DailyCollectionResult, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		if row, ok := byDay[day.Format("2006-01-02")]; ok {
			row.Date = day
			results = append(results, row)
			continue
		}
		results = append(results, domainRepo.DailyCollectionResult{Date: day, Amount: decimal.Zero})
	}
	return results, nil
}

func (r *analyticsRepository) CollectionsByMethod(ctx context.Context) ([]domainRepo.MethodCollectionResult, error) {
	var results []domainRepo.MethodCollectionResult
	err := r.payments(ctx).
		Select("method, COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count").
		Group("method").
		Order("amount DESC").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) CountStudents(ctx context.Context, status string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Student{}).Scopes(TenantScope(ctx))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *analyticsRepository) StudentBalances(ctx context.Context) ([]domainRepo.StudentBalanceResult, error) {
	paid := r.payments(ctx).
		Select("student_id, SUM(amount) AS total").
		Group("student_id")

	var results []domainRepo.StudentBalanceResult
	err := r.db.WithContext(ctx).
		Table("students").
		Scopes(TableTenantScope(ctx, "students")).
		Select(`students.id AS student_id,
			students.first_name,
			students.last_name,
			students.admission_number,
			COALESCE(classes.name, '') AS class_name,
			COALESCE(classes.monthly_fee, 0) AS monthly_fee,
			COALESCE(classes.annual_fee, 0) AS annual_fee,
			COALESCE(paid.total, 0) AS total_paid`).
		Joins("LEFT JOIN classes ON classes.id = students.class_id AND classes.deleted_at IS NULL").
		Joins("LEFT JOIN (?) AS paid ON paid.student_id = students.id", paid).
		Where("students.deleted_at IS NULL AND students.status = ?", "active").
		Order("classes.level ASC, students.first_name ASC, students.last_name ASC").
		Scan(&results).Error
	return results, err
}
