package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/woodveneer/storefront/internal/domain"
)

func TestAdminCreateRequiresSuperAdmin(t *testing.T) {
	s := newStore()
	uc := &AdminUC{Admins: s.Admins(), Cost: bcrypt.MinCost}
	actor := seedAdmin(t, s, "manager", domain.RoleAdmin)

	_, err := uc.Create(context.Background(), actor, NewAdmin{Username: "x", Email: "x@example.com", Password: "secret1", Role: domain.RoleEditor})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdminCreateRejectsTakenEmail(t *testing.T) {
	s := newStore()
	uc := &AdminUC{Admins: s.Admins(), Cost: bcrypt.MinCost}
	root := seedAdmin(t, s, "root", domain.RoleSuperAdmin)

	_, err := uc.Create(context.Background(), root, NewAdmin{Username: "other", Email: "ROOT@example.com", Password: "secret1", Role: domain.RoleEditor})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdminUpdatePermissions(t *testing.T) {
	s := newStore()
	uc := &AdminUC{Admins: s.Admins(), Cost: bcrypt.MinCost}
	ctx := context.Background()
	manager := seedAdmin(t, s, "manager", domain.RoleAdmin)
	editor := seedAdmin(t, s, "editor", domain.RoleEditor)
	root := seedAdmin(t, s, "root", domain.RoleSuperAdmin)

	name := "Biên tập"
	_, err := uc.Update(ctx, manager, editor.ID, AdminChange{FullName: &name})
	require.NoError(t, err)

	promote := domain.RoleAdmin
	_, err = uc.Update(ctx, manager, editor.ID, AdminChange{Role: &promote})
	assert.ErrorIs(t, err, domain.ErrForbidden, "admin cannot promote an editor")

	super := domain.RoleSuperAdmin
	_, err = uc.Update(ctx, manager, manager.ID, AdminChange{Role: &super})
	assert.ErrorIs(t, err, domain.ErrForbidden, "no self promotion")

	_, err = uc.Update(ctx, manager, root.ID, AdminChange{FullName: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	off := false
	_, err = uc.Update(ctx, root, root.ID, AdminChange{IsActive: &off})
	assert.ErrorIs(t, err, domain.ErrForbidden, "super admin cannot deactivate themself")

	pw := "newpass"
	updated, err := uc.Update(ctx, root, editor.ID, AdminChange{Password: &pw, Role: &promote})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpass")))
}

func TestAdminUpdateBlankPasswordKeepsHash(t *testing.T) {
	s := newStore()
	uc := &AdminUC{Admins: s.Admins(), Cost: bcrypt.MinCost}
	root := seedAdmin(t, s, "root", domain.RoleSuperAdmin)

	blank := "  "
	got, err := uc.Update(context.Background(), root, root.ID, AdminChange{Password: &blank})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("secret1")))
}

func TestAdminDeleteIsSoft(t *testing.T) {
	s := newStore()
	uc := &AdminUC{Admins: s.Admins(), Cost: bcrypt.MinCost}
	ctx := context.Background()
	root := seedAdmin(t, s, "root", domain.RoleSuperAdmin)
	editor := seedAdmin(t, s, "editor", domain.RoleEditor)

	err := uc.Delete(ctx, root, root.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = uc.Delete(ctx, editor, root.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, uc.Delete(ctx, root, editor.ID))
	got, err := uc.Get(ctx, editor.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestEnsureBootstrapRestoresAccount(t *testing.T) {
	s := newStore()
	uc := &AdminUC{Admins: s.Admins(), Cost: bcrypt.MinCost}
	ctx := context.Background()

	created, err := uc.EnsureBootstrap(ctx, "admin", "break-glass", "admin@example.com", "System")
	require.NoError(t, err)
	require.NotNil(t, created)

	created.Role = domain.RoleEditor
	created.IsActive = false
	created.PasswordHash = "changed"
	require.NoError(t, s.Admins().Update(ctx, created))

	restored, err := uc.EnsureBootstrap(ctx, "admin", "break-glass", "admin@example.com", "System")
	require.NoError(t, err)
	assert.Equal(t, created.ID, restored.ID)

	auth := &AuthUC{Admins: s.Admins(), Secret: []byte("k"), TTL: time.Hour}
	sess, err := auth.Login(ctx, "admin", "break-glass")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, sess.User.Role)
}

func TestEnsureBootstrapDisabledWithoutPassword(t *testing.T) {
	s := newStore()
	uc := &AdminUC{Admins: s.Admins(), Cost: bcrypt.MinCost}

	a, err := uc.EnsureBootstrap(context.Background(), "admin", "", "", "")
	require.NoError(t, err)
	assert.Nil(t, a)
	list, _ := uc.List(context.Background())
	assert.Empty(t, list)
}
