package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductRepo interface {
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FilterOptions(ctx context.Context) (*ProductFilterOptions, error)
}

type FeaturedProductRepo interface {
	ListProducts(ctx context.Context) ([]Product, error)
	Replace(ctx context.Context, productIDs []uuid.UUID) error
}

type CategoryRepo interface {
	List(ctx context.Context, f CategoryFilter) ([]Category, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OptionRepo interface {
	List(ctx context.Context, f OptionFilter) ([]ProductOption, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ProductOption, error)
	Create(ctx context.Context, o *ProductOption) error
	Update(ctx context.Context, o *ProductOption) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BlogRepo interface {
	List(ctx context.Context, f BlogFilter) ([]BlogPost, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BlogPost, error)
	SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
	Create(ctx context.Context, b *BlogPost) error
	Update(ctx context.Context, b *BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContactRepo interface {
	List(ctx context.Context, f ContactFilter) ([]ContactRequest, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ContactRequest, error)
	Create(ctx context.Context, c *ContactRequest) error
	Update(ctx context.Context, c *ContactRequest) error
	UpdateStatus(ctx context.Context, id uuid.UUID, st ContactStatus) (*ContactRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Recent(ctx context.Context, n int) ([]ContactRequest, error)
}

type CustomerRepo interface {
	List(ctx context.Context, f CustomerFilter) ([]Customer, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ConvertContact creates the customer for a lead and completes the lead
	// atomically. A lead that already has a customer yields ErrConflict.
	ConvertContact(ctx context.Context, in ConvertContactInput) (*Customer, error)
}

type AdminRepo interface {
	List(ctx context.Context) ([]Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	FindActiveByUsername(ctx context.Context, username string) (*Admin, error)
	FindByUsername(ctx context.Context, username string) (*Admin, error)
	Taken(ctx context.Context, username, email string, exclude uuid.UUID) (bool, error)
	Create(ctx context.Context, a *Admin) error
	Update(ctx context.Context, a *Admin) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type SettingsRepo interface {
	Get(ctx context.Context) (*SiteSettings, error)
	// Update applies fn to the stored row while holding it locked.
	Update(ctx context.Context, fn func(*SiteSettings) error) (*SiteSettings, error)
}

type DashboardRepo interface {
	// CountProducts counts products created before the given time; zero means all.
	CountProducts(ctx context.Context, before time.Time) (int64, error)
	CountContacts(ctx context.Context, from, to time.Time) (int64, error)
	CountCustomers(ctx context.Context, f CustomerCount) (int64, error)
	SumSpent(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	ProductsPerCategory(ctx context.Context) ([]CategoryCount, error)
}

type FileStorage interface {
	SaveImage(ctx context.Context, filename string, data []byte) (StoredFile, error)
	Remove(ctx context.Context, filename string) error
}

// ContactNotifier tells the shop about a new lead.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, c *ContactRequest) error
}
