package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/woodveneer/storefront/internal/domain"
)

type slugChecker func(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)

// uniqueSlug derives a slug from source and appends -2, -3... until it is free.
func uniqueSlug(ctx context.Context, source string, id uuid.UUID, exists slugChecker) (string, error) {
	base := domain.Slugify(source)
	if base == "" {
		base = id.String()[:8]
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := exists(ctx, slug, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// explicitSlug normalizes a caller-chosen slug and rejects it when taken.
func explicitSlug(ctx context.Context, raw string, id uuid.UUID, exists slugChecker) (string, error) {
	slug := domain.Slugify(raw)
	if slug == "" {
		return "", domain.NewValidationError("slug", "must contain letters or digits")
	}
	taken, err := exists(ctx, slug, id)
	if err != nil {
		return "", err
	}
	if taken {
		return "", fmt.Errorf("slug %q: %w", slug, domain.ErrConflict)
	}
	return slug, nil
}
