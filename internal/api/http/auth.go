package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/logger"
	"github.com/Sama2511/LJM-sub000/internal/repository"
	"github.com/Sama2511/LJM-sub000/internal/security"
)

// AuthMiddleware resolves the bearer token into a principal. Requests
// without a token continue anonymously; the workflows decide whether
// that is allowed.
type AuthMiddleware struct {
	tokens security.TokenManager
	users  repository.UserRepository
}

func NewAuthMiddleware(tokens security.TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

func (a *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, present := bearerToken(r)
		if !present {
			next.ServeHTTP(w, r)
			return
		}
		if token == "" {
			respondError(w, r, domain.ErrNotAuthenticated)
			return
		}

		claims, err := a.tokens.ValidateToken(token)
		if err != nil {
			logger.Debug("Rejected bearer token", "error", err)
			respondError(w, r, &domain.Error{Kind: domain.KindUnauthenticated, Message: "Invalid or expired token", Err: err})
			return
		}

		// Role and status come from the store so changes apply without re-login.
		user, err := a.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				respondError(w, r, domain.ErrNotAuthenticated)
				return
			}
			respondError(w, r, domain.Upstream(err))
			return
		}
		if user.Status == domain.UserStatusBanned {
			respondError(w, r, domain.ErrUserBanned)
			return
		}

		p := &domain.Principal{UserID: user.ID, Role: user.Role}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", true
	}
	return strings.TrimSpace(token), true
}
