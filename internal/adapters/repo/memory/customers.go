package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/woodveneer/storefront/internal/domain"
)

func contactID(c domain.ContactRequest) uuid.UUID { return c.ID }
func customerID(c domain.Customer) uuid.UUID      { return c.ID }

var contactSorters = sorters[domain.ContactRequest]{
	"name":      func(a, b domain.ContactRequest) int { return cmp.Compare(a.Name, b.Name) },
	"createdAt": func(a, b domain.ContactRequest) int { return byTime(a.CreatedAt, b.CreatedAt) },
}

type ContactRepo struct{ s *Store }

func (r *ContactRepo) List(_ context.Context, f domain.ContactFilter) ([]domain.ContactRequest, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.ContactRequest
	for _, c := range r.s.contacts {
		if f.Search != "" && !containsFold(c.Name, f.Search) {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		rows = append(rows, c)
	}
	out, total := window(rows, f.ListParams, contactSorters, "createdAt")
	return out, total, nil
}

func (r *ContactRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.ContactRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := index(r.s.contacts, id, contactID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	c := r.s.contacts[i]
	return &c, nil
}

func (r *ContactRepo) Create(_ context.Context, c *domain.ContactRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	r.s.contacts = append(r.s.contacts, *c)
	return nil
}

func (r *ContactRepo) Update(_ context.Context, c *domain.ContactRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.contacts, c.ID, contactID)
	if i < 0 {
		return domain.ErrNotFound
	}
	c.CreatedAt, c.UpdatedAt = r.s.contacts[i].CreatedAt, r.s.Now()
	r.s.contacts[i] = *c
	return nil
}

func (r *ContactRepo) UpdateStatus(_ context.Context, id uuid.UUID, st domain.ContactStatus) (*domain.ContactRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.contacts, id, contactID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	r.s.contacts[i].Status = st
	r.s.contacts[i].UpdatedAt = r.s.Now()
	c := r.s.contacts[i]
	return &c, nil
}

func (r *ContactRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.contacts, id, contactID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.contacts = slices.Delete(r.s.contacts, i, i+1)
	return nil
}

func (r *ContactRepo) Recent(ctx context.Context, n int) ([]domain.ContactRequest, error) {
	out, _, err := r.List(ctx, domain.ContactFilter{
		ListParams: domain.ListParams{Limit: n, SortBy: "createdAt", SortOrder: domain.SortDesc},
	})
	return out, err
}

var customerSorters = sorters[domain.Customer]{
	"name":       func(a, b domain.Customer) int { return cmp.Compare(a.Name, b.Name) },
	"createdAt":  func(a, b domain.Customer) int { return byTime(a.CreatedAt, b.CreatedAt) },
	"totalSpent": func(a, b domain.Customer) int { return a.TotalSpent.Cmp(b.TotalSpent) },
}

type CustomerRepo struct{ s *Store }

func matchCustomer(c domain.Customer, f domain.CustomerFilter) bool {
	if f.Search != "" && !containsFold(c.Name, f.Search) && !containsFold(c.Phone, f.Search) &&
		!ptrContainsFold(c.Email, f.Search) && !ptrContainsFold(c.Company, f.Search) {
		return false
	}
	switch {
	case f.Status != "" && c.Status != f.Status:
	case f.CustomerType != "" && c.CustomerType != f.CustomerType:
	case f.Source != "" && c.Source != f.Source:
	default:
		return true
	}
	return false
}

func (r *CustomerRepo) List(_ context.Context, f domain.CustomerFilter) ([]domain.Customer, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.Customer
	for _, c := range r.s.customers {
		if matchCustomer(c, f) {
			rows = append(rows, c)
		}
	}
	out, total := window(rows, f.ListParams, customerSorters, "createdAt")
	return out, total, nil
}

func (r *CustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := index(r.s.customers, id, customerID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	c := r.s.customers[i]
	return &c, nil
}

func (r *CustomerRepo) create(c *domain.Customer) error {
	if c.ContactID != nil && slices.ContainsFunc(r.s.customers, func(x domain.Customer) bool {
		return x.ContactID != nil && *x.ContactID == *c.ContactID
	}) {
		return fmt.Errorf("contact %s already converted: %w", *c.ContactID, domain.ErrConflict)
	}
	now := r.s.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	r.s.customers = append(r.s.customers, *c)
	return nil
}

func (r *CustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.create(c)
}

func (r *CustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.customers, c.ID, customerID)
	if i < 0 {
		return domain.ErrNotFound
	}
	c.CreatedAt, c.UpdatedAt = r.s.customers[i].CreatedAt, r.s.Now()
	r.s.customers[i] = *c
	return nil
}

func (r *CustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.customers, id, customerID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.customers = slices.Delete(r.s.customers, i, i+1)
	return nil
}

func (r *CustomerRepo) ConvertContact(_ context.Context, in domain.ConvertContactInput) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.contacts, in.ContactID, contactID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	c := domain.CustomerFromContact(&r.s.contacts[i], in)
	if err := r.create(c); err != nil {
		return nil, err
	}
	r.s.contacts[i].Status = domain.ContactCompleted
	r.s.contacts[i].UpdatedAt = r.s.Now()
	return c, nil
}
