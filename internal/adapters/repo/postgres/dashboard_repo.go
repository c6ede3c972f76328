package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/woodveneer/storefront/internal/domain"
)

type DashboardRepo struct{ db *gorm.DB }

func NewDashboardRepo(db *gorm.DB) *DashboardRepo { return &DashboardRepo{db: db} }

func between(q *gorm.DB, from, to time.Time) *gorm.DB {
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}
	return q
}

func (r *DashboardRepo) CountProducts(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	err := between(r.db.WithContext(ctx).Model(&domain.Product{}), time.Time{}, before).Count(&n).Error
	return n, err
}

func (r *DashboardRepo) CountContacts(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := between(r.db.WithContext(ctx).Model(&domain.ContactRequest{}), from, to).Count(&n).Error
	return n, err
}

func (r *DashboardRepo) CountCustomers(ctx context.Context, f domain.CustomerCount) (int64, error) {
	q := between(r.db.WithContext(ctx).Model(&domain.Customer{}), f.From, f.To)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *DashboardRepo) SumSpent(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var agg struct{ Total decimal.NullDecimal }
	err := between(r.db.WithContext(ctx).Model(&domain.Customer{}), from, to).
		Select("SUM(total_spent) AS total").Scan(&agg).Error
	if err != nil || !agg.Total.Valid {
		return decimal.Zero, err
	}
	return agg.Total.Decimal, nil
}

func (r *DashboardRepo) ProductsPerCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	out := []domain.CategoryCount{}
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC, category ASC").
		Scan(&out).Error
	return out, err
}
