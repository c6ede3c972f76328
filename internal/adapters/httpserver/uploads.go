package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/woodveneer/storefront/internal/adapters/imagekit"
	"github.com/woodveneer/storefront/internal/domain"
	"github.com/woodveneer/storefront/internal/usecase"
)

// multipartSlack covers boundaries and part headers around the file itself.
const multipartSlack = 64 << 10

func (s *Server) uploadLimit() int64 {
	if s.uploads.MaxBytes > 0 {
		return s.uploads.MaxBytes
	}
	return domain.MaxUploadBytes
}

func (s *Server) apiUpload(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	limit := s.uploadLimit()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartSlack)
	if err := r.ParseMultipartForm(limit + multipartSlack); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, r, "upload", usecase.ErrFileTooLarge)
			return
		}
		writeError(w, r, "upload", domain.NewValidationError("file", "multipart form expected"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, "upload", domain.NewValidationError("file", "file is required"))
		return
	}
	defer f.Close()
	if hdr.Size > limit {
		writeError(w, r, "upload", usecase.ErrFileTooLarge)
		return
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		writeError(w, r, "upload", err)
		return
	}
	stored, err := s.uploads.Upload(r.Context(), data)
	if err != nil {
		writeError(w, r, "upload", err)
		return
	}
	ok(w, stored, "File uploaded successfully")
}

func (s *Server) apiImageKitAuth(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	if s.imagekit == nil {
		fail(w, http.StatusServiceUnavailable, imagekit.ErrNotConfigured.Error(), nil)
		return
	}
	p, err := s.imagekit.Sign()
	if errors.Is(err, imagekit.ErrNotConfigured) {
		fail(w, http.StatusServiceUnavailable, err.Error(), nil)
		return
	}
	if err != nil {
		writeError(w, r, "imagekit auth", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
