package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/storage"
)

// FileOpener reads stored objects back for download.
type FileOpener interface {
	Open(key string) (io.ReadCloser, error)
}

type FileHandler struct {
	files FileOpener
}

func NewFileHandler(files FileOpener) *FileHandler {
	return &FileHandler{files: files}
}

// Download streams a stored event image.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		http.Error(w, "Missing key", http.StatusBadRequest)
		return
	}

	file, err := h.files.Open(key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "File not found", http.StatusNotFound)
		return
	case errors.Is(err, storage.ErrInvalidKey):
		http.Error(w, "Invalid key", http.StatusBadRequest)
		return
	case err != nil:
		logger.Error("Failed to open stored file", "key", key, "error", err)
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", storage.ContentTypeFor(key))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Failed to stream file", "key", key, "error", err)
	}
}
