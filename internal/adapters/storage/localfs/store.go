// Package localfs stores uploaded images on the local disk under a directory
// that the HTTP server exposes at a URL prefix.
package localfs

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog/log"

	"github.com/woodveneer/storefront/internal/domain"
)

const (
	ThumbPrefix = "thumb-"
	ThumbWidth  = 300
)

type Store struct {
	Dir       string
	URLPrefix string
}

func New(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *Store) url(name string) string { return s.URLPrefix + "/" + name }

// SaveImage writes data under filename. JPEG and PNG images also get a
// thumbnail; a thumbnail failure is logged and the original is kept.
func (s *Store) SaveImage(ctx context.Context, filename string, data []byte) (domain.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredFile{}, err
	}
	name := path.Base(filepath.ToSlash(filename))
	if name == "." || name == "/" || strings.HasPrefix(name, ".") {
		return domain.StoredFile{}, domain.NewValidationError("file", "invalid file name")
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return domain.StoredFile{}, fmt.Errorf("write upload: %w", err)
	}
	out := domain.StoredFile{
		URL:      s.url(name),
		Filename: name,
		Size:     len(data),
		Type:     mimetype.Detect(data).String(),
	}
	switch out.Type {
	case "image/jpeg", "image/png":
		if err := s.thumbnail(name, out.Type, data); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("thumbnail failed")
		} else {
			out.ThumbnailURL = s.url(ThumbPrefix + name)
		}
	}
	return out, nil
}

func (s *Store) thumbnail(name, mime string, data []byte) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if img.Bounds().Dx() > ThumbWidth {
		img = resize.Resize(ThumbWidth, 0, img, resize.Lanczos3)
	}
	f, err := os.Create(filepath.Join(s.Dir, ThumbPrefix+name))
	if err != nil {
		return err
	}
	defer f.Close()
	if mime == "image/png" {
		return png.Encode(f, img)
	}
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 80})
}

// Remove deletes a stored file and its thumbnail. Missing files are not an error.
func (s *Store) Remove(_ context.Context, filename string) error {
	name := path.Base(filepath.ToSlash(filename))
	for _, n := range []string{name, ThumbPrefix + name} {
		if err := os.Remove(filepath.Join(s.Dir, n)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
