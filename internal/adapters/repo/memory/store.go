// Package memory keeps every repository in process memory. It backs the
// handler and usecase tests and mirrors the filter rules of the postgres
// repositories.
package memory

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/woodveneer/storefront/internal/domain"
)

type Store struct {
	mu         sync.RWMutex
	products   []domain.Product
	featured   []uuid.UUID
	categories []domain.Category
	options    []domain.ProductOption
	posts      []domain.BlogPost
	contacts   []domain.ContactRequest
	customers  []domain.Customer
	admins     []domain.Admin
	settings   *domain.SiteSettings
	Now        func() time.Time
}

func New() *Store { return &Store{Now: time.Now} }

func (s *Store) Products() *ProductRepo { return &ProductRepo{s} }
func (s *Store) Featured() *FeaturedProductRepo { return &FeaturedProductRepo{s} }
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s} }
func (s *Store) Options() *OptionRepo { return &OptionRepo{s} }
func (s *Store) Posts() *BlogRepo { return &BlogRepo{s} }
func (s *Store) Contacts() *ContactRepo { return &ContactRepo{s} }
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s} }
func (s *Store) Admins() *AdminRepo { return &AdminRepo{s} }
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{s} }
func (s *Store) Dashboard() *DashboardRepo { return &DashboardRepo{s} }

func containsFold(hay, needle string) bool {
	return strings.Contains(strings.ToLower(hay), strings.ToLower(strings.TrimSpace(needle)))
}

func ptrContainsFold(hay *string, needle string) bool {
	return hay != nil && containsFold(*hay, needle)
}

// sorters compare two rows by an API sortBy key.
type sorters[T any] map[string]func(a, b T) int

func byTime(a, b time.Time) int { return a.Compare(b) }

func byOptTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

// window sorts rows and cuts the requested page out of them.
func window[T any](rows []T, p domain.ListParams, by sorters[T], fallback string) ([]T, int64) {
	p = p.Normalized()
	less, ok := by[p.SortBy]
	if !ok {
		less = by[fallback]
	}
	slices.SortStableFunc(rows, func(a, b T) int {
		if p.SortOrder == domain.SortDesc {
			return less(b, a)
		}
		return less(a, b)
	})
	total := int64(len(rows))
	start := min(p.Offset(), len(rows))
	end := min(start+p.Limit, len(rows))
	out := make([]T, end-start)
	copy(out, rows[start:end])
	return out, total
}

func index[T any](rows []T, id uuid.UUID, key func(T) uuid.UUID) int {
	return slices.IndexFunc(rows, func(r T) bool { return key(r) == id })
}
