package httpserver

import (
	"net/http"
	"strings"

	"github.com/woodveneer/storefront/internal/domain"
)

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// requireAdmin resolves the bearer token to an active admin. On failure it
// writes the 401 and returns false.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (*domain.Admin, bool) {
	tok := bearerToken(r)
	if tok == "" {
		fail(w, http.StatusUnauthorized, "unauthorized", nil)
		return nil, false
	}
	a, err := s.auth.Verify(r.Context(), tok)
	if err != nil {
		writeError(w, r, "verify token", err)
		return nil, false
	}
	return a, true
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) apiLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "login", err)
		return
	}
	sess, err := s.auth.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		writeError(w, r, "login", err)
		return
	}
	ok(w, sess, "login successful")
}

// apiLogout is an acknowledgement only; tokens are stateless and the client drops it.
func (s *Server) apiLogout(w http.ResponseWriter, r *http.Request) {
	ok(w, nil, "logged out")
}

func (s *Server) apiVerify(w http.ResponseWriter, r *http.Request) {
	a, authed := s.requireAdmin(w, r)
	if !authed {
		return
	}
	ok(w, map[string]any{"user": a, "isValid": true}, "")
}
