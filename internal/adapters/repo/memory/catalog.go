package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/woodveneer/storefront/internal/domain"
)

func productID(p domain.Product) uuid.UUID { return p.ID }
func categoryID(c domain.Category) uuid.UUID { return c.ID }
func optionID(o domain.ProductOption) uuid.UUID { return o.ID }
func postID(b domain.BlogPost) uuid.UUID { return b.ID }

var productSorters = sorters[domain.Product]{
	"name":      func(a, b domain.Product) int { return cmp.Compare(a.Name, b.Name) },
	"price":     func(a, b domain.Product) int { return a.Price.Cmp(b.Price) },
	"createdAt": func(a, b domain.Product) int { return byTime(a.CreatedAt, b.CreatedAt) },
}

type ProductRepo struct{ s *Store }

func anyOf(have, want []string) bool {
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}

func matchProduct(p domain.Product, f domain.ProductFilter) bool {
	switch {
	case f.Search != "" && !containsFold(p.Name, f.Search):
	case f.Category != "" && p.Category != f.Category:
	case len(f.Colors) > 0 && !anyOf(p.Colors, f.Colors):
	case len(f.Thickness) > 0 && !anyOf(p.Thickness, f.Thickness):
	case f.MinPrice != nil && p.Price.LessThan(*f.MinPrice):
	case f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice):
	case f.IsActive != nil && p.IsActive != *f.IsActive:
	default:
		return true
	}
	return false
}

func (r *ProductRepo) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.Product
	for _, p := range r.s.products {
		if matchProduct(p, f) {
			rows = append(rows, p)
		}
	}
	out, total := window(rows, f.ListParams, productSorters, "createdAt")
	return out, total, nil
}

func (r *ProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := index(r.s.products, id, productID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	p := r.s.products[i]
	return &p, nil
}

func (r *ProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if index(r.s.products, p.ID, productID) >= 0 {
		return domain.ErrConflict
	}
	now := r.s.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.s.products = append(r.s.products, *p)
	return nil
}

func (r *ProductRepo) Update(_ context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.products, p.ID, productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	p.CreatedAt = r.s.products[i].CreatedAt
	p.UpdatedAt = r.s.Now()
	r.s.products[i] = *p
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.products, id, productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.products = slices.Delete(r.s.products, i, i+1)
	r.s.featured = slices.DeleteFunc(r.s.featured, func(f uuid.UUID) bool { return f == id })
	return nil
}

func (r *ProductRepo) FilterOptions(_ context.Context) (*domain.ProductFilterOptions, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := &domain.ProductFilterOptions{
		Categories: []string{},
		Colors:     []string{},
		Thickness:  []string{},
		PriceRange: domain.PriceRange{Min: domain.DefaultPriceMin, Max: domain.DefaultPriceMax},
	}
	first := true
	for _, p := range r.s.products {
		if !p.IsActive {
			continue
		}
		if p.Category != "" {
			out.Categories = append(out.Categories, p.Category)
		}
		out.Colors = append(out.Colors, p.Colors...)
		out.Thickness = append(out.Thickness, p.Thickness...)
		if first || p.Price.LessThan(out.PriceRange.Min) {
			out.PriceRange.Min = p.Price
		}
		if first || p.Price.GreaterThan(out.PriceRange.Max) {
			out.PriceRange.Max = p.Price
		}
		first = false
	}
	for _, l := range []*[]string{&out.Categories, &out.Colors, &out.Thickness} {
		slices.Sort(*l)
		*l = slices.Compact(*l)
	}
	return out, nil
}

type FeaturedProductRepo struct{ s *Store }

func (r *FeaturedProductRepo) ListProducts(_ context.Context) ([]domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Product{}
	for _, id := range r.s.featured {
		if i := index(r.s.products, id, productID); i >= 0 && r.s.products[i].IsActive {
			out = append(out, r.s.products[i])
		}
	}
	return out, nil
}

func (r *FeaturedProductRepo) Replace(_ context.Context, ids []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.featured = slices.Clone(ids)
	return nil
}

var categorySorters = sorters[domain.Category]{
	"name":      func(a, b domain.Category) int { return cmp.Compare(a.Name, b.Name) },
	"createdAt": func(a, b domain.Category) int { return byTime(a.CreatedAt, b.CreatedAt) },
}

type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) List(_ context.Context, f domain.CategoryFilter) ([]domain.Category, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.Category
	for _, c := range r.s.categories {
		if f.Search != "" && !containsFold(c.Name, f.Search) {
			continue
		}
		if f.IsActive != nil && c.IsActive != *f.IsActive {
			continue
		}
		rows = append(rows, c)
	}
	out, total := window(rows, f.ListParams, categorySorters, "createdAt")
	return out, total, nil
}

func (r *CategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := index(r.s.categories, id, categoryID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	c := r.s.categories[i]
	return &c, nil
}

func (r *CategoryRepo) SlugExists(_ context.Context, slug string, exclude uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return slices.ContainsFunc(r.s.categories, func(c domain.Category) bool {
		return c.Slug == slug && c.ID != exclude
	}), nil
}

func (r *CategoryRepo) Create(_ context.Context, c *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if slices.ContainsFunc(r.s.categories, func(x domain.Category) bool { return x.ID == c.ID || x.Slug == c.Slug }) {
		return domain.ErrConflict
	}
	c.CreatedAt, c.UpdatedAt = r.s.Now(), r.s.Now()
	r.s.categories = append(r.s.categories, *c)
	return nil
}

func (r *CategoryRepo) Update(_ context.Context, c *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.categories, c.ID, categoryID)
	if i < 0 {
		return domain.ErrNotFound
	}
	c.CreatedAt, c.UpdatedAt = r.s.categories[i].CreatedAt, r.s.Now()
	r.s.categories[i] = *c
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.categories, id, categoryID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.categories = slices.Delete(r.s.categories, i, i+1)
	return nil
}

var optionSorters = sorters[domain.ProductOption]{
	"name":      func(a, b domain.ProductOption) int { return cmp.Compare(a.Name, b.Name) },
	"type":      func(a, b domain.ProductOption) int { return cmp.Compare(a.Type, b.Type) },
	"createdAt": func(a, b domain.ProductOption) int { return byTime(a.CreatedAt, b.CreatedAt) },
}

type OptionRepo struct{ s *Store }

func (r *OptionRepo) List(_ context.Context, f domain.OptionFilter) ([]domain.ProductOption, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.ProductOption
	for _, o := range r.s.options {
		if f.Search != "" && !containsFold(o.Name, f.Search) {
			continue
		}
		if f.Type != "" && o.Type != f.Type {
			continue
		}
		if f.IsActive != nil && o.IsActive != *f.IsActive {
			continue
		}
		rows = append(rows, o)
	}
	out, total := window(rows, f.ListParams, optionSorters, "createdAt")
	return out, total, nil
}

func (r *OptionRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.ProductOption, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := index(r.s.options, id, optionID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	o := r.s.options[i]
	return &o, nil
}

func (r *OptionRepo) Create(_ context.Context, o *domain.ProductOption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.CreatedAt, o.UpdatedAt = r.s.Now(), r.s.Now()
	r.s.options = append(r.s.options, *o)
	return nil
}

func (r *OptionRepo) Update(_ context.Context, o *domain.ProductOption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.options, o.ID, optionID)
	if i < 0 {
		return domain.ErrNotFound
	}
	o.CreatedAt, o.UpdatedAt = r.s.options[i].CreatedAt, r.s.Now()
	r.s.options[i] = *o
	return nil
}

func (r *OptionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.options, id, optionID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.options = slices.Delete(r.s.options, i, i+1)
	return nil
}

var blogSorters = sorters[domain.BlogPost]{
	"title":       func(a, b domain.BlogPost) int { return cmp.Compare(a.Title, b.Title) },
	"publishedAt": func(a, b domain.BlogPost) int { return byOptTime(a.PublishedAt, b.PublishedAt) },
	"createdAt":   func(a, b domain.BlogPost) int { return byTime(a.CreatedAt, b.CreatedAt) },
}

type BlogRepo struct{ s *Store }

func (r *BlogRepo) List(_ context.Context, f domain.BlogFilter) ([]domain.BlogPost, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []domain.BlogPost
	for _, b := range r.s.posts {
		if f.Search != "" && !containsFold(b.Title, f.Search) {
			continue
		}
		if f.Category != "" && b.Category != f.Category {
			continue
		}
		if f.IsPublished != nil && b.IsPublished != *f.IsPublished {
			continue
		}
		rows = append(rows, b)
	}
	out, total := window(rows, f.ListParams, blogSorters, "createdAt")
	return out, total, nil
}

func (r *BlogRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := index(r.s.posts, id, postID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	b := r.s.posts[i]
	return &b, nil
}

func (r *BlogRepo) SlugExists(_ context.Context, slug string, exclude uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return slices.ContainsFunc(r.s.posts, func(b domain.BlogPost) bool {
		return b.Slug == slug && b.ID != exclude
	}), nil
}

func (r *BlogRepo) Create(_ context.Context, b *domain.BlogPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if slices.ContainsFunc(r.s.posts, func(x domain.BlogPost) bool { return x.ID == b.ID || x.Slug == b.Slug }) {
		return domain.ErrConflict
	}
	b.CreatedAt, b.UpdatedAt = r.s.Now(), r.s.Now()
	r.s.posts = append(r.s.posts, *b)
	return nil
}

func (r *BlogRepo) Update(_ context.Context, b *domain.BlogPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.posts, b.ID, postID)
	if i < 0 {
		return domain.ErrNotFound
	}
	b.CreatedAt, b.UpdatedAt = r.s.posts[i].CreatedAt, r.s.Now()
	r.s.posts[i] = *b
	return nil
}

func (r *BlogRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.posts, id, postID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.posts = slices.Delete(r.s.posts, i, i+1)
	return nil
}
