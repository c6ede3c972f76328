package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/woodveneer/storefront/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
	Featured domain.FeaturedProductRepo
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, domain.Pagination, error) {
	f.ListParams = f.ListParams.Normalized()
	list, total, err := uc.Products.List(ctx, f)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return list, domain.NewPagination(f.ListParams, total), nil
}

func (uc *ProductUC) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return uc.Products.FindByID(ctx, id)
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.SyncLegacyLists()
	return uc.Products.Create(ctx, p)
}

// Update loads the product, lets apply mutate it and stores the result.
func (uc *ProductUC) Update(ctx context.Context, id uuid.UUID, apply func(*domain.Product)) (*domain.Product, error) {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(p)
	p.ID = id
	p.SyncLegacyLists()
	if err := uc.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProductUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Products.Delete(ctx, id)
}

func (uc *ProductUC) FilterOptions(ctx context.Context) (*domain.ProductFilterOptions, error) {
	return uc.Products.FilterOptions(ctx)
}

// Each walks every page of a filtered listing, for exports.
func (uc *ProductUC) Each(ctx context.Context, f domain.ProductFilter, fn func(domain.Product) error) error {
	f.Page, f.Limit = 1, domain.MaxLimit
	for {
		list, pg, err := uc.List(ctx, f)
		if err != nil {
			return err
		}
		for _, p := range list {
			if err := fn(p); err != nil {
				return err
			}
		}
		if f.Page >= pg.TotalPages {
			return nil
		}
		f.Page++
	}
}

func (uc *ProductUC) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return uc.Featured.ListProducts(ctx)
}

// SetFeatured replaces the featured list; ids keep the given order.
func (uc *ProductUC) SetFeatured(ctx context.Context, ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for i, id := range ids {
		if _, dup := seen[id]; dup {
			return domain.NewValidationError(fmt.Sprintf("productIds[%d]", i), "duplicate product")
		}
		seen[id] = struct{}{}
		if _, err := uc.Products.FindByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewValidationError(fmt.Sprintf("productIds[%d]", i), "unknown product")
			}
			return err
		}
	}
	return uc.Featured.Replace(ctx, ids)
}
