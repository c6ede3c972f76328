package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/woodveneer/storefront/internal/adapters/repo/memory"
	"github.com/woodveneer/storefront/internal/adapters/storage/localfs"
	"github.com/woodveneer/storefront/internal/domain"
	"github.com/woodveneer/storefront/internal/usecase"
)

type harness struct {
	t       *testing.T
	store   *memory.Store
	deps    Deps
	handler http.Handler
	dir     string
	// tokens by username: root (super_admin), manager (admin), writer (editor)
	tokens map[string]string
	admins map[string]*domain.Admin
}

type response struct {
	Code   int
	Header http.Header
	Body   struct {
		Success bool                `json:"success"`
		Data    json.RawMessage     `json:"data"`
		Error   string              `json:"error"`
		Message string              `json:"message"`
		Details []domain.FieldError `json:"details"`
	}
	Raw []byte
}

func newHarness(t *testing.T, tweak ...func(*Deps)) *harness {
	t.Helper()
	s := memory.New()
	dir := t.TempDir()
	files, err := localfs.New(dir, "/uploads")
	require.NoError(t, err)

	adminUC := &usecase.AdminUC{Admins: s.Admins(), Cost: bcrypt.MinCost}
	auth := &usecase.AuthUC{Admins: s.Admins(), Secret: []byte("handler-test-secret-0123456789ab"), TTL: time.Hour}
	contacts := &usecase.ContactUC{Contacts: s.Contacts()}
	h := &harness{
		t:      t,
		store:  s,
		dir:    dir,
		tokens: map[string]string{},
		admins: map[string]*domain.Admin{},
		deps: Deps{
			Products:    &usecase.ProductUC{Products: s.Products(), Featured: s.Featured()},
			Categories:  &usecase.CategoryUC{Categories: s.Categories()},
			Options:     &usecase.OptionUC{Options: s.Options()},
			Blog:        &usecase.BlogUC{Posts: s.Posts()},
			Contacts:    contacts,
			Customers:   &usecase.CustomerUC{Customers: s.Customers()},
			Admins:      adminUC,
			Auth:        auth,
			Settings:    &usecase.SettingsUC{Settings: s.Settings()},
			Dashboard:   &usecase.DashboardUC{Stats: s.Dashboard(), Contacts: s.Contacts()},
			Uploads:     &usecase.UploadUC{Files: files},
			UploadDir:   dir,
			CORSOrigins: []string{"https://shop.example.com"},
			PublicRate:  1000,
		},
	}
	for _, fn := range tweak {
		fn(&h.deps)
	}
	h.handler = New(h.deps)

	root := &domain.Admin{Role: domain.RoleSuperAdmin}
	for name, role := range map[string]domain.Role{
		"root":    domain.RoleSuperAdmin,
		"manager": domain.RoleAdmin,
		"writer":  domain.RoleEditor,
	} {
		a, err := adminUC.Create(context.Background(), root, usecase.NewAdmin{
			Username: name, Email: name + "@example.com", FullName: name, Password: "secret1", Role: role,
		})
		require.NoError(t, err)
		tok, _, err := auth.Issue(a)
		require.NoError(t, err)
		h.tokens[name], h.admins[name] = tok, a
	}
	return h
}

// do sends body (nil, a string, or a value marshalled to JSON) as the named admin; "" sends no token.
func (h *harness) do(method, target, as string, body any) *response {
	h.t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(h.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+h.tokens[as])
	}
	return h.serve(req)
}

func (h *harness) serve(req *http.Request) *response {
	h.t.Helper()
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	out := &response{Code: rec.Code, Header: rec.Header(), Raw: rec.Body.Bytes()}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(h.t, json.Unmarshal(out.Raw, &out.Body), string(out.Raw))
	}
	return out
}

// data decodes the envelope's data field into v.
func (r *response) data(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body.Data, v), string(r.Raw))
}
