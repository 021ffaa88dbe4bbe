package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Sama2511/LJM-sub000/internal/domain"
)

type contextKey int

const principalKey contextKey = iota

func withPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated caller, or nil for anonymous requests.
func PrincipalFromContext(ctx context.Context) *domain.Principal {
	p, _ := ctx.Value(principalKey).(*domain.Principal)
	return p
}

// pathID reads a numeric path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("Invalid %s", name)
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, fallback int32) (int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, domain.Invalid("Invalid %s", name)
	}
	return int32(v), nil
}

// queryStatuses parses repeated or comma separated status filters.
func queryStatuses(r *http.Request) ([]domain.RequestStatus, error) {
	var out []domain.RequestStatus
	for _, raw := range r.URL.Query()["status"] {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			st, err := domain.ParseRequestStatus(part)
			if err != nil {
				return nil, domain.Invalid("Invalid status %q", part)
			}
			out = append(out, st)
		}
	}
	return out, nil
}
