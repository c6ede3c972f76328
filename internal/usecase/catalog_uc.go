package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/woodveneer/storefront/internal/domain"
)

type CategoryUC struct {
	Categories domain.CategoryRepo
}

func (uc *CategoryUC) List(ctx context.Context, f domain.CategoryFilter) ([]domain.Category, domain.Pagination, error) {
	f.ListParams = f.ListParams.Normalized()
	list, total, err := uc.Categories.List(ctx, f)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return list, domain.NewPagination(f.ListParams, total), nil
}

func (uc *CategoryUC) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return uc.Categories.FindByID(ctx, id)
}

// Create derives the slug from the name when none is given.
func (uc *CategoryUC) Create(ctx context.Context, c *domain.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	var err error
	if strings.TrimSpace(c.Slug) == "" {
		c.Slug, err = uniqueSlug(ctx, c.Name, c.ID, uc.Categories.SlugExists)
	} else {
		c.Slug, err = explicitSlug(ctx, c.Slug, c.ID, uc.Categories.SlugExists)
	}
	if err != nil {
		return err
	}
	return uc.Categories.Create(ctx, c)
}

func (uc *CategoryUC) Update(ctx context.Context, id uuid.UUID, apply func(*domain.Category)) (*domain.Category, error) {
	c, err := uc.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := c.Slug
	apply(c)
	c.ID = id
	switch {
	case strings.TrimSpace(c.Slug) == "":
		c.Slug, err = uniqueSlug(ctx, c.Name, id, uc.Categories.SlugExists)
	case c.Slug != prev:
		c.Slug, err = explicitSlug(ctx, c.Slug, id, uc.Categories.SlugExists)
	}
	if err != nil {
		return nil, err
	}
	if err := uc.Categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CategoryUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Categories.Delete(ctx, id)
}

type OptionUC struct {
	Options domain.OptionRepo
}

func (uc *OptionUC) List(ctx context.Context, f domain.OptionFilter) ([]domain.ProductOption, domain.Pagination, error) {
	f.ListParams = f.ListParams.Normalized()
	list, total, err := uc.Options.List(ctx, f)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return list, domain.NewPagination(f.ListParams, total), nil
}

func (uc *OptionUC) Get(ctx context.Context, id uuid.UUID) (*domain.ProductOption, error) {
	return uc.Options.FindByID(ctx, id)
}

func (uc *OptionUC) Create(ctx context.Context, o *domain.ProductOption) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.Normalize()
	return uc.Options.Create(ctx, o)
}

func (uc *OptionUC) Update(ctx context.Context, id uuid.UUID, apply func(*domain.ProductOption)) (*domain.ProductOption, error) {
	o, err := uc.Options.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(o)
	o.ID = id
	o.Normalize()
	if err := uc.Options.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *OptionUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Options.Delete(ctx, id)
}

type BlogUC struct {
	Posts domain.BlogRepo
	Now   func() time.Time
}

func (uc *BlogUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

func (uc *BlogUC) List(ctx context.Context, f domain.BlogFilter) ([]domain.BlogPost, domain.Pagination, error) {
	f.ListParams = f.ListParams.Normalized()
	list, total, err := uc.Posts.List(ctx, f)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return list, domain.NewPagination(f.ListParams, total), nil
}

func (uc *BlogUC) Get(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	return uc.Posts.FindByID(ctx, id)
}

// Create derives the slug from the title when none is given and stamps the
// publish time of posts created published.
func (uc *BlogUC) Create(ctx context.Context, b *domain.BlogPost) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	var err error
	if strings.TrimSpace(b.Slug) == "" {
		b.Slug, err = uniqueSlug(ctx, b.Title, b.ID, uc.Posts.SlugExists)
	} else {
		b.Slug, err = explicitSlug(ctx, b.Slug, b.ID, uc.Posts.SlugExists)
	}
	if err != nil {
		return err
	}
	published := b.IsPublished
	b.IsPublished, b.PublishedAt = false, nil
	b.SetPublished(published, uc.now())
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return uc.Posts.Create(ctx, b)
}

// Update applies the change; a flip of the published flag stamps or clears PublishedAt.
func (uc *BlogUC) Update(ctx context.Context, id uuid.UUID, apply func(*domain.BlogPost)) (*domain.BlogPost, error) {
	b, err := uc.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasPublished, prevSlug := b.IsPublished, b.Slug
	apply(b)
	b.ID = id
	published := b.IsPublished
	b.IsPublished = wasPublished
	b.SetPublished(published, uc.now())

	switch {
	case strings.TrimSpace(b.Slug) == "":
		b.Slug, err = uniqueSlug(ctx, b.Title, id, uc.Posts.SlugExists)
	case b.Slug != prevSlug:
		b.Slug, err = explicitSlug(ctx, b.Slug, id, uc.Posts.SlugExists)
	}
	if err != nil {
		return nil, err
	}
	if err := uc.Posts.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (uc *BlogUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Posts.Delete(ctx, id)
}
