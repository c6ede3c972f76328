package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/woodveneer/storefront/internal/domain"
)

func adminID(a domain.Admin) uuid.UUID { return a.ID }

type AdminRepo struct{ s *Store }

func (r *AdminRepo) List(_ context.Context) ([]domain.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := slices.Clone(r.s.admins)
	slices.SortStableFunc(out, func(a, b domain.Admin) int { return a.CreatedAt.Compare(b.CreatedAt) })
	if out == nil {
		out = []domain.Admin{}
	}
	return out, nil
}

func (r *AdminRepo) first(match func(domain.Admin) bool) (*domain.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := slices.IndexFunc(r.s.admins, match)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	a := r.s.admins[i]
	return &a, nil
}

func (r *AdminRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Admin, error) {
	return r.first(func(a domain.Admin) bool { return a.ID == id })
}

func (r *AdminRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*domain.Admin, error) {
	return r.first(func(a domain.Admin) bool { return a.ID == id && a.IsActive })
}

func (r *AdminRepo) FindActiveByUsername(_ context.Context, username string) (*domain.Admin, error) {
	return r.first(func(a domain.Admin) bool { return a.Username == username && a.IsActive })
}

func (r *AdminRepo) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	return r.first(func(a domain.Admin) bool { return a.Username == username })
}

func (r *AdminRepo) Taken(_ context.Context, username, email string, exclude uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return slices.ContainsFunc(r.s.admins, func(a domain.Admin) bool {
		return a.ID != exclude && (a.Username == username || strings.EqualFold(a.Email, email))
	}), nil
}

func (r *AdminRepo) Create(_ context.Context, a *domain.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if slices.ContainsFunc(r.s.admins, func(x domain.Admin) bool {
		return x.ID == a.ID || x.Username == a.Username || strings.EqualFold(x.Email, a.Email)
	}) {
		return domain.ErrConflict
	}
	now := r.s.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.admins = append(r.s.admins, *a)
	return nil
}

func (r *AdminRepo) Update(_ context.Context, a *domain.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.admins, a.ID, adminID)
	if i < 0 {
		return domain.ErrNotFound
	}
	a.CreatedAt, a.UpdatedAt = r.s.admins[i].CreatedAt, r.s.Now()
	r.s.admins[i] = *a
	return nil
}

func (r *AdminRepo) modify(id uuid.UUID, fn func(*domain.Admin)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.admins, id, adminID)
	if i < 0 {
		return domain.ErrNotFound
	}
	fn(&r.s.admins[i])
	r.s.admins[i].UpdatedAt = r.s.Now()
	return nil
}

func (r *AdminRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	return r.modify(id, func(a *domain.Admin) { a.IsActive = false })
}

func (r *AdminRepo) TouchLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	return r.modify(id, func(a *domain.Admin) { a.LastLoginAt = &at })
}

type SettingsRepo struct{ s *Store }

func (r *SettingsRepo) Get(_ context.Context) (*domain.SiteSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.settings == nil {
		def := domain.DefaultSettings()
		return &def, nil
	}
	out := *r.s.settings
	return &out, nil
}

func (r *SettingsRepo) Update(_ context.Context, fn func(*domain.SiteSettings) error) (*domain.SiteSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := domain.DefaultSettings()
	if r.s.settings != nil {
		cur = *r.s.settings
	}
	if err := fn(&cur); err != nil {
		return nil, err
	}
	cur.ID = domain.SettingsRowID
	cur.UpdatedAt = r.s.Now()
	r.s.settings = &cur
	out := cur
	return &out, nil
}

type DashboardRepo struct{ s *Store }

func inWindow(t, from, to time.Time) bool {
	return (from.IsZero() || !t.Before(from)) && (to.IsZero() || t.Before(to))
}

func (r *DashboardRepo) CountProducts(_ context.Context, before time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.products {
		if inWindow(p.CreatedAt, time.Time{}, before) {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) CountContacts(_ context.Context, from, to time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, c := range r.s.contacts {
		if inWindow(c.CreatedAt, from, to) {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) CountCustomers(_ context.Context, f domain.CustomerCount) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, c := range r.s.customers {
		if inWindow(c.CreatedAt, f.From, f.To) && (f.Status == "" || c.Status == f.Status) {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) SumSpent(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := decimal.Zero
	for _, c := range r.s.customers {
		if inWindow(c.CreatedAt, from, to) {
			total = total.Add(c.TotalSpent)
		}
	}
	return total, nil
}

func (r *DashboardRepo) ProductsPerCategory(_ context.Context) ([]domain.CategoryCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := map[string]int64{}
	for _, p := range r.s.products {
		counts[p.Category]++
	}
	out := make([]domain.CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, domain.CategoryCount{Category: c, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.CategoryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return out, nil
}
