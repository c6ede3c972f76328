package httpserver

import (
	"net/http"

	"github.com/woodveneer/storefront/internal/domain"
)

// apiSettings is public; the storefront reads site name, contact data and SEO from it.
func (s *Server) apiSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.settings.Get(r.Context())
	if err != nil {
		writeError(w, r, "settings", err)
		return
	}
	ok(w, st, "")
}

func (s *Server) apiSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	var patch domain.SettingsPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, "update settings", err)
		return
	}
	st, err := s.settings.Update(r.Context(), patch)
	if err != nil {
		writeError(w, r, "update settings", err)
		return
	}
	ok(w, st, "Settings updated successfully")
}
