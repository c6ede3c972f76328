package httpserver

import (
	"net/http"
	"strings"

	"github.com/woodveneer/storefront/internal/domain"
	"github.com/woodveneer/storefront/internal/usecase"
)

type adminInput struct {
	Username *string      `json:"username" validate:"omitempty,min=3,max=50,alphanum"`
	Email    *string      `json:"email" validate:"omitempty,email"`
	FullName *string      `json:"fullName" validate:"omitempty,min=1,max=255"`
	Password *string      `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *domain.Role `json:"role" validate:"omitempty,oneof=super_admin admin editor"`
	Avatar   *string      `json:"avatar" validate:"omitempty,url"`
	IsActive *bool        `json:"isActive"`
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func (s *Server) apiAdmins(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	list, err := s.admins.List(r.Context())
	if err != nil {
		writeError(w, r, "list admins", err)
		return
	}
	ok(w, list, "")
}

func (s *Server) apiAdmin(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "admin", err)
		return
	}
	a, err := s.admins.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "admin", err)
		return
	}
	ok(w, a, "")
}

func (s *Server) apiAdminCreate(w http.ResponseWriter, r *http.Request) {
	actor, authed := s.requireAdmin(w, r)
	if !authed {
		return
	}
	var in adminInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "create admin", err)
		return
	}
	if err := requireFields(map[string]bool{
		"username": in.Username != nil,
		"email":    in.Email != nil,
		"fullName": in.FullName != nil,
		"password": in.Password != nil,
	}); err != nil {
		writeError(w, r, "create admin", err)
		return
	}
	role := domain.RoleEditor
	if in.Role != nil {
		role = *in.Role
	}
	a, err := s.admins.Create(r.Context(), actor, usecase.NewAdmin{
		Username: strings.TrimSpace(*in.Username),
		Email:    strings.TrimSpace(*in.Email),
		FullName: strings.TrimSpace(*in.FullName),
		Password: *in.Password,
		Role:     role,
		Avatar:   in.Avatar,
	})
	if err != nil {
		writeError(w, r, "create admin", err)
		return
	}
	created(w, a, "Admin created successfully")
}

func (s *Server) apiAdminUpdate(w http.ResponseWriter, r *http.Request) {
	actor, authed := s.requireAdmin(w, r)
	if !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "admin", err)
		return
	}
	var in adminInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "update admin", err)
		return
	}
	a, err := s.admins.Update(r.Context(), actor, id, usecase.AdminChange{
		Username: trimmed(in.Username),
		Email:    trimmed(in.Email),
		FullName: trimmed(in.FullName),
		Password: in.Password,
		Role:     in.Role,
		Avatar:   in.Avatar,
		IsActive: in.IsActive,
	})
	if err != nil {
		writeError(w, r, "admin", err)
		return
	}
	ok(w, a, "Admin updated successfully")
}

func (s *Server) apiAdminDelete(w http.ResponseWriter, r *http.Request) {
	actor, authed := s.requireAdmin(w, r)
	if !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "admin", err)
		return
	}
	if err := s.admins.Delete(r.Context(), actor, id); err != nil {
		writeError(w, r, "admin", err)
		return
	}
	ok(w, nil, "Admin deleted successfully")
}
