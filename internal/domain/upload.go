package domain

type StoredFile struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	Size         int    `json:"size"`
	Type         string `json:"type"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// MaxUploadBytes is the default upload ceiling.
const MaxUploadBytes = 5 << 20

// AllowedImageTypes maps accepted MIME types to stored file extensions.
var AllowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}
