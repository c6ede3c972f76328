package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/woodveneer/storefront/internal/domain"
)

type AdminRepo struct{ db *gorm.DB }

func NewAdminRepo(db *gorm.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) List(ctx context.Context) ([]domain.Admin, error) {
	out := []domain.Admin{}
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AdminRepo) first(ctx context.Context, query string, args ...any) (*domain.Admin, error) {
	var a domain.Admin
	if err := r.db.WithContext(ctx).Where(query, args...).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AdminRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *AdminRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	return r.first(ctx, "id = ? AND is_active = ?", id, true)
}

func (r *AdminRepo) FindActiveByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return r.first(ctx, "username = ? AND is_active = ?", username, true)
}

func (r *AdminRepo) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *AdminRepo) Taken(ctx context.Context, username, email string, exclude uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Admin{}).
		Where("(username = ? OR LOWER(email) = ?)", username, strings.ToLower(email))
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AdminRepo) Create(ctx context.Context, a *domain.Admin) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *AdminRepo) Update(ctx context.Context, a *domain.Admin) error {
	return save(r.db.WithContext(ctx), a)
}

func (r *AdminRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Model(&domain.Admin{}).Where("id = ?", id).Update("is_active", false))
}

func (r *AdminRepo) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return affected(r.db.WithContext(ctx).Model(&domain.Admin{}).Where("id = ?", id).Update("last_login_at", at))
}
