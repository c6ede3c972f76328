package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/woodveneer/storefront/internal/domain"
)

type ContactUC struct {
	Contacts domain.ContactRepo
	Notify   domain.ContactNotifier
}

func (uc *ContactUC) List(ctx context.Context, f domain.ContactFilter) ([]domain.ContactRequest, domain.Pagination, error) {
	f.ListParams = f.ListParams.Normalized()
	list, total, err := uc.Contacts.List(ctx, f)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return list, domain.NewPagination(f.ListParams, total), nil
}

func (uc *ContactUC) Get(ctx context.Context, id uuid.UUID) (*domain.ContactRequest, error) {
	return uc.Contacts.FindByID(ctx, id)
}

// Submit records a lead from the public form. Leads always start pending.
// The notification is sent in the background and never fails the request.
func (uc *ContactUC) Submit(ctx context.Context, c *domain.ContactRequest) error {
	c.Status = domain.ContactPending
	if err := uc.Create(ctx, c); err != nil {
		return err
	}
	if uc.Notify != nil {
		lead := *c
		go func(ctx context.Context) {
			if err := uc.Notify.NotifyContact(ctx, &lead); err != nil {
				log.Warn().Err(err).Str("contact", lead.ID.String()).Msg("lead notification failed")
			}
		}(context.WithoutCancel(ctx))
	}
	return nil
}

func (uc *ContactUC) Create(ctx context.Context, c *domain.ContactRequest) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = domain.ContactPending
	}
	return uc.Contacts.Create(ctx, c)
}

func (uc *ContactUC) Update(ctx context.Context, id uuid.UUID, apply func(*domain.ContactRequest)) (*domain.ContactRequest, error) {
	c, err := uc.Contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(c)
	c.ID = id
	if err := uc.Contacts.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *ContactUC) SetStatus(ctx context.Context, id uuid.UUID, st domain.ContactStatus) (*domain.ContactRequest, error) {
	return uc.Contacts.UpdateStatus(ctx, id, st)
}

func (uc *ContactUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Contacts.Delete(ctx, id)
}

func (uc *ContactUC) Recent(ctx context.Context, n int) ([]domain.ContactRequest, error) {
	return uc.Contacts.Recent(ctx, n)
}

type CustomerUC struct {
	Customers domain.CustomerRepo
}

func (uc *CustomerUC) List(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, domain.Pagination, error) {
	f.ListParams = f.ListParams.Normalized()
	list, total, err := uc.Customers.List(ctx, f)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return list, domain.NewPagination(f.ListParams, total), nil
}

func (uc *CustomerUC) Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return uc.Customers.FindByID(ctx, id)
}

func (uc *CustomerUC) Create(ctx context.Context, c *domain.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CustomerType == "" {
		c.CustomerType = domain.CustomerIndividual
	}
	if c.Status == "" {
		c.Status = domain.CustomerPotential
	}
	if c.Source == "" {
		c.Source = domain.SourceDirect
	}
	if c.TotalSpent.IsNegative() {
		return domain.NewValidationError("totalSpent", "must not be negative")
	}
	return uc.Customers.Create(ctx, c)
}

// Update never re-links a customer to another lead.
func (uc *CustomerUC) Update(ctx context.Context, id uuid.UUID, apply func(*domain.Customer)) (*domain.Customer, error) {
	c, err := uc.Customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contactID := c.ContactID
	apply(c)
	c.ID, c.ContactID = id, contactID
	if c.TotalSpent.LessThan(decimal.Zero) {
		return nil, domain.NewValidationError("totalSpent", "must not be negative")
	}
	if err := uc.Customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CustomerUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Customers.Delete(ctx, id)
}

// ConvertContact turns a lead into a customer exactly once.
func (uc *CustomerUC) ConvertContact(ctx context.Context, in domain.ConvertContactInput) (*domain.Customer, error) {
	if in.ContactID == uuid.Nil {
		return nil, domain.NewValidationError("contactId", "required")
	}
	if in.CustomerType == "" {
		in.CustomerType = domain.CustomerIndividual
	}
	return uc.Customers.ConvertContact(ctx, in)
}

// Each walks every page of a filtered customer listing.
func (uc *CustomerUC) Each(ctx context.Context, f domain.CustomerFilter, fn func(domain.Customer) error) error {
	f.Page, f.Limit = 1, domain.MaxLimit
	for {
		list, pg, err := uc.List(ctx, f)
		if err != nil {
			return err
		}
		for _, c := range list {
			if err := fn(c); err != nil {
				return err
			}
		}
		if f.Page >= pg.TotalPages {
			return nil
		}
		f.Page++
	}
}
