package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/woodveneer/storefront/internal/domain"
)

var (
	categorySort = sortColumns{"name": "name", "createdAt": "created_at"}
	optionSort   = sortColumns{"name": "name", "type": "type", "createdAt": "created_at"}
	blogSort     = sortColumns{"title": "title", "publishedAt": "published_at", "createdAt": "created_at"}
)

// slugTaken reports whether another row of model already uses slug.
func slugTaken(db *gorm.DB, model any, slug string, exclude uuid.UUID) (bool, error) {
	q := db.Model(model).Where("slug = ?", slug)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func categoryFilter(q *gorm.DB, f domain.CategoryFilter) *gorm.DB {
	if f.Search != "" {
		q = q.Where("name ILIKE ?", contains(f.Search))
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

func (r *CategoryRepo) List(ctx context.Context, f domain.CategoryFilter) ([]domain.Category, int64, error) {
	q := categoryFilter(r.db.WithContext(ctx).Model(&domain.Category{}), f)
	return list[domain.Category](q, f.ListParams, categorySort)
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CategoryRepo) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	return slugTaken(r.db.WithContext(ctx), &domain.Category{}, slug, exclude)
}

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	return save(r.db.WithContext(ctx), c)
}

func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id))
}

type OptionRepo struct{ db *gorm.DB }

func NewOptionRepo(db *gorm.DB) *OptionRepo { return &OptionRepo{db: db} }

func optionFilter(q *gorm.DB, f domain.OptionFilter) *gorm.DB {
	if f.Search != "" {
		q = q.Where("name ILIKE ?", contains(f.Search))
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

func (r *OptionRepo) List(ctx context.Context, f domain.OptionFilter) ([]domain.ProductOption, int64, error) {
	q := optionFilter(r.db.WithContext(ctx).Model(&domain.ProductOption{}), f)
	return list[domain.ProductOption](q, f.ListParams, optionSort)
}

func (r *OptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProductOption, error) {
	var o domain.ProductOption
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *OptionRepo) Create(ctx context.Context, o *domain.ProductOption) error {
	return translate(r.db.WithContext(ctx).Create(o).Error)
}

func (r *OptionRepo) Update(ctx context.Context, o *domain.ProductOption) error {
	return save(r.db.WithContext(ctx), o)
}

func (r *OptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&domain.ProductOption{}, "id = ?", id))
}

type BlogRepo struct{ db *gorm.DB }

func NewBlogRepo(db *gorm.DB) *BlogRepo { return &BlogRepo{db: db} }

func blogFilter(q *gorm.DB, f domain.BlogFilter) *gorm.DB {
	if f.Search != "" {
		q = q.Where("title ILIKE ?", contains(f.Search))
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.IsPublished != nil {
		q = q.Where("is_published = ?", *f.IsPublished)
	}
	return q
}

func (r *BlogRepo) List(ctx context.Context, f domain.BlogFilter) ([]domain.BlogPost, int64, error) {
	q := blogFilter(r.db.WithContext(ctx).Model(&domain.BlogPost{}), f)
	return list[domain.BlogPost](q, f.ListParams, blogSort)
}

func (r *BlogRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	var b domain.BlogPost
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *BlogRepo) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	return slugTaken(r.db.WithContext(ctx), &domain.BlogPost{}, slug, exclude)
}

func (r *BlogRepo) Create(ctx context.Context, b *domain.BlogPost) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *BlogRepo) Update(ctx context.Context, b *domain.BlogPost) error {
	return save(r.db.WithContext(ctx), b)
}

func (r *BlogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&domain.BlogPost{}, "id = ?", id))
}
