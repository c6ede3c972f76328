package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/woodveneer/storefront/internal/domain"
)

const DefaultBcryptCost = 12

type AdminUC struct {
	Admins domain.AdminRepo
	Cost   int
}

type NewAdmin struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     domain.Role
	Avatar   *string
}

// AdminChange is a partial update; nil fields are left alone and an empty
// password keeps the current hash.
type AdminChange struct {
	Username *string
	Email    *string
	FullName *string
	Password *string
	Role     *domain.Role
	Avatar   *string
	IsActive *bool
}

func (uc *AdminUC) hash(pw string) (string, error) {
	cost := uc.Cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (uc *AdminUC) List(ctx context.Context) ([]domain.Admin, error) {
	return uc.Admins.List(ctx)
}

func (uc *AdminUC) Get(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	return uc.Admins.FindByID(ctx, id)
}

func (uc *AdminUC) Create(ctx context.Context, actor *domain.Admin, in NewAdmin) (*domain.Admin, error) {
	if !domain.CanCreateAdmin(actor) {
		return nil, domain.ErrForbidden
	}
	taken, err := uc.Admins.Taken(ctx, in.Username, in.Email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("username or email already in use: %w", domain.ErrConflict)
	}
	h, err := uc.hash(in.Password)
	if err != nil {
		return nil, err
	}
	a := &domain.Admin{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		FullName:     in.FullName,
		PasswordHash: h,
		Role:         in.Role,
		Avatar:       in.Avatar,
		IsActive:     true,
	}
	if err := uc.Admins.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *AdminUC) Update(ctx context.Context, actor *domain.Admin, id uuid.UUID, ch AdminChange) (*domain.Admin, error) {
	target, err := uc.Admins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var requested domain.Role
	if ch.Role != nil {
		requested = *ch.Role
	}
	if !domain.CanEditAdmin(actor, target, requested) {
		return nil, domain.ErrForbidden
	}
	if ch.IsActive != nil && (actor.Role != domain.RoleSuperAdmin || actor.ID == target.ID) {
		return nil, domain.ErrForbidden
	}

	if ch.Username != nil {
		target.Username = *ch.Username
	}
	if ch.Email != nil {
		target.Email = strings.ToLower(*ch.Email)
	}
	if ch.Username != nil || ch.Email != nil {
		taken, err := uc.Admins.Taken(ctx, target.Username, target.Email, target.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("username or email already in use: %w", domain.ErrConflict)
		}
	}
	if ch.FullName != nil {
		target.FullName = *ch.FullName
	}
	if ch.Role != nil {
		target.Role = *ch.Role
	}
	if ch.Avatar != nil {
		target.Avatar = ch.Avatar
	}
	if ch.IsActive != nil {
		target.IsActive = *ch.IsActive
	}
	if ch.Password != nil && strings.TrimSpace(*ch.Password) != "" {
		if target.PasswordHash, err = uc.hash(*ch.Password); err != nil {
			return nil, err
		}
	}
	if err := uc.Admins.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Delete deactivates an admin; the row stays.
func (uc *AdminUC) Delete(ctx context.Context, actor *domain.Admin, id uuid.UUID) error {
	if actor != nil && actor.ID == id {
		return domain.NewValidationError("id", "you cannot delete your own account")
	}
	target, err := uc.Admins.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanDeleteAdmin(actor, target) {
		return domain.ErrForbidden
	}
	return uc.Admins.Deactivate(ctx, id)
}

// EnsureBootstrap makes sure the break-glass account exists as an active
// super_admin with the configured password. An empty password disables it.
func (uc *AdminUC) EnsureBootstrap(ctx context.Context, username, password, email, fullName string) (*domain.Admin, error) {
	if username == "" || password == "" {
		return nil, nil
	}
	h, err := uc.hash(password)
	if err != nil {
		return nil, err
	}
	a, err := uc.Admins.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a = &domain.Admin{
			ID:           uuid.New(),
			Username:     username,
			Email:        strings.ToLower(email),
			FullName:     fullName,
			PasswordHash: h,
			Role:         domain.RoleSuperAdmin,
			IsActive:     true,
		}
		return a, uc.Admins.Create(ctx, a)
	case err != nil:
		return nil, err
	}
	a.PasswordHash = h
	a.Role = domain.RoleSuperAdmin
	a.IsActive = true
	return a, uc.Admins.Update(ctx, a)
}
