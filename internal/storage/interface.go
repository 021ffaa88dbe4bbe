package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("object not found")
	ErrInvalidKey      = errors.New("invalid object key")
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrTooLarge        = errors.New("object exceeds size limit")
)

// ObjectStorage stores event images.
type ObjectStorage interface {
	// Upload stores r under key and returns the key it was stored as.
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)

	// Remove deletes the given keys. Missing keys are not an error.
	Remove(ctx context.Context, keys ...string) error

	// PublicURL returns the address clients fetch key from.
	PublicURL(key string) string
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// NewObjectKey builds a unique key under prefix with an extension matching contentType.
func NewObjectKey(prefix, contentType string) string {
	ext := extensions[strings.ToLower(contentType)]
	return fmt.Sprintf("%s/%s%s", strings.Trim(prefix, "/"), uuid.New().String(), ext)
}

// ContentTypeFor guesses a content type from the key's extension.
func ContentTypeFor(key string) string {
	ext := strings.ToLower(path.Ext(key))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	for ct, e := range extensions {
		if e == ext {
			return ct
		}
	}
	return "application/octet-stream"
}
