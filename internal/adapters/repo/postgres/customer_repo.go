package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/woodveneer/storefront/internal/domain"
)

var (
	contactSort  = sortColumns{"name": "name", "createdAt": "created_at"}
	customerSort = sortColumns{"name": "name", "createdAt": "created_at", "totalSpent": "total_spent"}
)

type ContactRepo struct{ db *gorm.DB }

func NewContactRepo(db *gorm.DB) *ContactRepo { return &ContactRepo{db: db} }

func contactFilter(q *gorm.DB, f domain.ContactFilter) *gorm.DB {
	if f.Search != "" {
		q = q.Where("name ILIKE ?", contains(f.Search))
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *ContactRepo) List(ctx context.Context, f domain.ContactFilter) ([]domain.ContactRequest, int64, error) {
	q := contactFilter(r.db.WithContext(ctx).Model(&domain.ContactRequest{}), f)
	return list[domain.ContactRequest](q, f.ListParams, contactSort)
}

func (r *ContactRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ContactRequest, error) {
	var c domain.ContactRequest
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ContactRepo) Create(ctx context.Context, c *domain.ContactRequest) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *ContactRepo) Update(ctx context.Context, c *domain.ContactRequest) error {
	return save(r.db.WithContext(ctx), c)
}

func (r *ContactRepo) UpdateStatus(ctx context.Context, id uuid.UUID, st domain.ContactStatus) (*domain.ContactRequest, error) {
	res := r.db.WithContext(ctx).Model(&domain.ContactRequest{}).Where("id = ?", id).Update("status", st)
	if err := affected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *ContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&domain.ContactRequest{}, "id = ?", id))
}

func (r *ContactRepo) Recent(ctx context.Context, n int) ([]domain.ContactRequest, error) {
	out := []domain.ContactRequest{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Limit(n).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func customerFilter(q *gorm.DB, f domain.CustomerFilter) *gorm.DB {
	if f.Search != "" {
		like := contains(f.Search)
		q = q.Where("(name ILIKE ? OR phone ILIKE ? OR email ILIKE ? OR company ILIKE ?)", like, like, like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CustomerType != "" {
		q = q.Where("customer_type = ?", f.CustomerType)
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}
	return q
}

func (r *CustomerRepo) List(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, int64, error) {
	q := customerFilter(r.db.WithContext(ctx).Model(&domain.Customer{}), f)
	return list[domain.Customer](q, f.ListParams, customerSort)
}

func (r *CustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	return save(r.db.WithContext(ctx), c)
}

func (r *CustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id))
}

// ConvertContact locks the lead row, so concurrent conversions of one lead
// serialize; the unique index on contact_id backs the check.
func (r *CustomerRepo) ConvertContact(ctx context.Context, in domain.ConvertContactInput) (*domain.Customer, error) {
	var created *domain.Customer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contact domain.ContactRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&contact, "id = ?", in.ContactID).Error; err != nil {
			return translate(err)
		}
		var n int64
		if err := tx.Model(&domain.Customer{}).Where("contact_id = ?", contact.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("contact %s already converted: %w", contact.ID, domain.ErrConflict)
		}
		c := domain.CustomerFromContact(&contact, in)
		if err := tx.Create(c).Error; err != nil {
			return translate(err)
		}
		if err := tx.Model(&domain.ContactRequest{}).Where("id = ?", contact.ID).Update("status", domain.ContactCompleted).Error; err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
