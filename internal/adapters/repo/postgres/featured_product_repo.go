package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/woodveneer/storefront/internal/domain"
)

type FeaturedProductRepo struct{ db *gorm.DB }

func NewFeaturedProductRepo(db *gorm.DB) *FeaturedProductRepo {
	return &FeaturedProductRepo{db: db}
}

// ListProducts returns the active featured products ordered by DisplayOrder.
func (r *FeaturedProductRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.*").
		Joins("INNER JOIN featured_products ON products.id = featured_products.product_id").
		Where("products.is_active = ?", true).
		Order("featured_products.display_order asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Replace swaps the whole featured list in one transaction.
func (r *FeaturedProductRepo) Replace(ctx context.Context, productIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.FeaturedProduct{}).Error; err != nil {
			return err
		}
		if len(productIDs) == 0 {
			return nil
		}
		now := time.Now()
		rows := make([]domain.FeaturedProduct, 0, len(productIDs))
		for i, id := range productIDs {
			rows = append(rows, domain.FeaturedProduct{ID: uuid.New(), ProductID: id, DisplayOrder: i, CreatedAt: now})
		}
		return translate(tx.Create(&rows).Error)
	})
}
