package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Sama2511/LJM-sub000/internal/domain"
)

const maxJSONBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Invalid("Request body is required")
		}
		return domain.Invalid("Invalid request body: %v", err)
	}
	return nil
}
