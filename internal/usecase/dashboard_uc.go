package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/woodveneer/storefront/internal/domain"
)

const (
	salesChartMonths   = 6
	recentContactCount = 5
)

type DashboardUC struct {
	Stats    domain.DashboardRepo
	Contacts domain.ContactRepo
	Now      func() time.Time
}

func (uc *DashboardUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

func monthStart(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location())
}

func (uc *DashboardUC) Overview(ctx context.Context) (*domain.DashboardStats, error) {
	now := uc.now()
	cur, prev, next := monthStart(now, 0), monthStart(now, -1), monthStart(now, 1)

	products, err := uc.Stats.CountProducts(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	productsBefore, err := uc.Stats.CountProducts(ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	contacts, err := uc.Stats.CountContacts(ctx, cur, next)
	if err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	contactsPrev, err := uc.Stats.CountContacts(ctx, prev, cur)
	if err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	active, err := uc.Stats.CountCustomers(ctx, domain.CustomerCount{Status: domain.CustomerActive})
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	activeBefore, err := uc.Stats.CountCustomers(ctx, domain.CustomerCount{Status: domain.CustomerActive, To: cur})
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	total, err := uc.Stats.CountCustomers(ctx, domain.CustomerCount{})
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	revenue, err := uc.Stats.SumSpent(ctx, cur, next)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	revenuePrev, err := uc.Stats.SumSpent(ctx, prev, cur)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	out := &domain.DashboardStats{TotalCustomers: total}
	out.TotalProducts = stat(products, productsBefore)
	out.NewContacts = stat(contacts, contactsPrev)
	out.ActiveCustomers = stat(active, activeBefore)
	out.Revenue.Value = revenue
	out.Revenue.Change, out.Revenue.ChangeType = domain.PercentChange(revenue.InexactFloat64(), revenuePrev.InexactFloat64())
	return out, nil
}

func stat(cur, prev int64) domain.StatValue {
	pct, kind := domain.PercentChange(float64(cur), float64(prev))
	return domain.StatValue{Value: cur, Change: pct, ChangeType: kind}
}

// SalesChart covers the current month and the five before it, oldest first.
func (uc *DashboardUC) SalesChart(ctx context.Context) ([]domain.SalesPoint, error) {
	now := uc.now()
	out := make([]domain.SalesPoint, 0, salesChartMonths)
	for i := salesChartMonths - 1; i >= 0; i-- {
		from, to := monthStart(now, -i), monthStart(now, -i+1)
		contacts, err := uc.Stats.CountContacts(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("count contacts: %w", err)
		}
		customers, err := uc.Stats.CountCustomers(ctx, domain.CustomerCount{From: from, To: to})
		if err != nil {
			return nil, fmt.Errorf("count customers: %w", err)
		}
		sales, err := uc.Stats.SumSpent(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("sum revenue: %w", err)
		}
		out = append(out, domain.SalesPoint{
			Month:     fmt.Sprintf("THG %d", int(from.Month())),
			Sales:     sales,
			Contacts:  contacts,
			Customers: customers,
		})
	}
	return out, nil
}

func (uc *DashboardUC) CategoryChart(ctx context.Context) ([]domain.CategorySlice, error) {
	counts, err := uc.Stats.ProductsPerCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("products per category: %w", err)
	}
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return []domain.CategorySlice{{Name: "Chưa có dữ liệu", Value: 100, Count: 0, Color: "#6B7280"}}, nil
	}
	out := make([]domain.CategorySlice, 0, len(counts))
	for i, c := range counts {
		name := c.Category
		if name == "" {
			name = "Chưa phân loại"
		}
		out = append(out, domain.CategorySlice{
			Name:  name,
			Value: int(math.Round(float64(c.Count) / float64(total) * 100)),
			Count: c.Count,
			Color: domain.ChartPalette[i%len(domain.ChartPalette)],
		})
	}
	return out, nil
}

func (uc *DashboardUC) RecentContacts(ctx context.Context) ([]domain.ContactRequest, error) {
	return uc.Contacts.Recent(ctx, recentContactCount)
}
