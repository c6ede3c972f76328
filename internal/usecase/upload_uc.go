package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/woodveneer/storefront/internal/domain"
)

var ErrFileTooLarge = domain.NewValidationError("file", "file too large")

type UploadUC struct {
	Files    domain.FileStorage
	MaxBytes int64
	Now      func() time.Time
}

// Upload checks size and sniffed type before anything reaches storage.
func (uc *UploadUC) Upload(ctx context.Context, data []byte) (domain.StoredFile, error) {
	limit := uc.MaxBytes
	if limit <= 0 {
		limit = domain.MaxUploadBytes
	}
	if len(data) == 0 {
		return domain.StoredFile{}, domain.NewValidationError("file", "file is required")
	}
	if int64(len(data)) > limit {
		return domain.StoredFile{}, ErrFileTooLarge
	}
	mime := mimetype.Detect(data).String()
	ext, ok := domain.AllowedImageTypes[mime]
	if !ok {
		return domain.StoredFile{}, domain.NewValidationError("file", "unsupported file type "+mime)
	}
	return uc.Files.SaveImage(ctx, uc.filename(ext), data)
}

func (uc *UploadUC) filename(ext string) string {
	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}
	rnd := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("%d-%s.%s", now().UnixMilli(), rnd, ext)
}
