package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sama2511/LJM-sub000/internal/logger"
)

// LocalStorage keeps objects on the local filesystem and serves them through
// the API's download route.
type LocalStorage struct {
	cfg     Config
	allowed map[string]bool
}

// NewLocalStorage creates the root directory if needed.
func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &LocalStorage{cfg: cfg, allowed: allowed}, nil
}

// resolve maps key to a path inside the root, rejecting anything that escapes it.
func (s *LocalStorage) resolve(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	clean := filepath.Clean("/" + key)
	if clean == "/" || clean != "/"+key {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.cfg.Dir, filepath.FromSlash(clean)), nil
}

func (s *LocalStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	logger.ExternalServiceCall("LocalStorage", "Upload", "key", key, "contentType", contentType)

	if len(s.allowed) > 0 && !s.allowed[strings.ToLower(contentType)] {
		return "", ErrUnsupportedType
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	src := r
	if s.cfg.MaxBytes > 0 {
		src = io.LimitReader(r, s.cfg.MaxBytes+1)
	}
	n, err := io.Copy(tmp, src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		logger.ExternalServiceResult("LocalStorage", "Upload", err, "key", key)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if s.cfg.MaxBytes > 0 && n > s.cfg.MaxBytes {
		return "", ErrTooLarge
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	logger.ExternalServiceResult("LocalStorage", "Upload", nil, "key", key, "bytes", n)
	return key, nil
}

func (s *LocalStorage) Remove(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		fullPath, err := s.resolve(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	err := errors.Join(errs...)
	logger.ExternalServiceResult("LocalStorage", "Remove", err, "keys", keys)
	return err
}

func (s *LocalStorage) PublicURL(key string) string {
	return fmt.Sprintf("%s/api/files/%s", strings.TrimRight(s.cfg.BaseURL, "/"), key)
}

// Open returns a reader for key, used by the download route.
func (s *LocalStorage) Open(key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}
