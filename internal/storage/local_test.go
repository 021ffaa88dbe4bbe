package storage_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sama2511/LJM-sub000/internal/storage"
)

func newStorage(t *testing.T) *storage.LocalStorage {
	t.Helper()
	s, err := storage.NewLocalStorage(storage.Config{
		Type:         "local",
		Dir:          t.TempDir(),
		BaseURL:      "http://localhost:8080/",
		AllowedTypes: []string{"image/png", "image/jpeg"},
		MaxBytes:     16,
	})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadOpenRemove(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	key := storage.NewObjectKey("events", "image/png")
	assert.True(t, strings.HasPrefix(key, "events/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	stored, err := s.Upload(ctx, key, "image/png", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)
	assert.Equal(t, key, stored)

	f, err := s.Open(key)
	require.NoError(t, err)
	data, _ := io.ReadAll(f)
	f.Close()
	assert.Equal(t, "png-bytes", string(data))

	assert.Equal(t, "http://localhost:8080/api/files/"+key, s.PublicURL(key))

	require.NoError(t, s.Remove(ctx, key))
	_, err = s.Open(key)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Removing again is not an error.
	assert.NoError(t, s.Remove(ctx, key))
}

func TestLocalStorage_Rejections(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	_, err := s.Upload(ctx, "events/a.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, storage.ErrUnsupportedType)

	_, err = s.Upload(ctx, "../escape.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, storage.ErrInvalidKey)

	_, err = s.Upload(ctx, "events/big.png", "image/png", strings.NewReader(strings.Repeat("x", 17)))
	assert.ErrorIs(t, err, storage.ErrTooLarge)
	_, err = s.Open("events/big.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.Open("/etc/passwd/../../x")
	assert.ErrorIs(t, err, storage.ErrInvalidKey)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/jpeg", storage.ContentTypeFor("events/a.JPEG"))
	assert.Equal(t, "image/png", storage.ContentTypeFor("events/a.png"))
	assert.Equal(t, "application/octet-stream", storage.ContentTypeFor("events/a"))
}
