package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/woodveneer/storefront/internal/adapters/repo/memory"
	"github.com/woodveneer/storefront/internal/domain"
)

var march15 = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func newStore() *memory.Store {
	s := memory.New()
	s.Now = fixedClock(march15)
	return s
}

// seedAdmin stores an active admin with password "secret1".
func seedAdmin(t *testing.T, s *memory.Store, username string, role domain.Role) *domain.Admin {
	t.Helper()
	uc := &AdminUC{Admins: s.Admins(), Cost: bcrypt.MinCost}
	a, err := uc.Create(context.Background(), &domain.Admin{Role: domain.RoleSuperAdmin}, NewAdmin{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Password: "secret1",
		Role:     role,
	})
	require.NoError(t, err)
	return a
}
