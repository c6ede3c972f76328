package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/woodveneer/storefront/internal/domain"
)

var productSort = sortColumns{"name": "name", "price": "price", "createdAt": "created_at"}

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

// productFilter adds one predicate per present filter field.
func productFilter(q *gorm.DB, f domain.ProductFilter) *gorm.DB {
	if f.Search != "" {
		q = q.Where("name ILIKE ?", contains(f.Search))
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if len(f.Colors) > 0 {
		q = q.Where("jsonb_exists_any(colors, ?)", pq.Array(f.Colors))
	}
	if len(f.Thickness) > 0 {
		q = q.Where("jsonb_exists_any(thickness, ?)", pq.Array(f.Thickness))
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	q := productFilter(r.db.WithContext(ctx).Model(&domain.Product{}), f)
	return list[domain.Product](q, f.ListParams, productSort)
}

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	return save(r.db.WithContext(ctx), p)
}

// Delete removes the product together with its featured entry.
func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.FeaturedProduct{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&domain.Product{}, "id = ?", id))
	})
}

func (r *ProductRepo) FilterOptions(ctx context.Context) (*domain.ProductFilterOptions, error) {
	db := r.db.WithContext(ctx)
	out := &domain.ProductFilterOptions{Categories: []string{}, Colors: []string{}, Thickness: []string{}}

	if err := db.Model(&domain.Product{}).
		Distinct("category").Where("is_active = ? AND category <> ''", true).
		Order("category asc").Pluck("category", &out.Categories).Error; err != nil {
		return nil, err
	}
	for col, dst := range map[string]*[]string{"colors": &out.Colors, "thickness": &out.Thickness} {
		err := db.Raw(
			"SELECT DISTINCT v FROM products, jsonb_array_elements_text(COALESCE(" + col + ", '[]'::jsonb)) AS v WHERE is_active = true ORDER BY v",
		).Scan(dst).Error
		if err != nil {
			return nil, err
		}
	}

	var bounds struct {
		Min decimal.NullDecimal
		Max decimal.NullDecimal
	}
	if err := db.Model(&domain.Product{}).
		Select("MIN(price) AS min, MAX(price) AS max").
		Where("is_active = ?", true).Scan(&bounds).Error; err != nil {
		return nil, err
	}
	out.PriceRange = domain.PriceRange{Min: domain.DefaultPriceMin, Max: domain.DefaultPriceMax}
	if bounds.Min.Valid {
		out.PriceRange.Min = bounds.Min.Decimal
	}
	if bounds.Max.Valid {
		out.PriceRange.Max = bounds.Max.Decimal
	}
	return out, nil
}
