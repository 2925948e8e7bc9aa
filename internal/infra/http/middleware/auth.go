package middleware

import (
	"net/http"
	"strings"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/http/handlers"
	"github.com/ascendhq/concierge-api/internal/infra/token"
	"github.com/ascendhq/concierge-api/internal/usecase"
)

// RequireAuth validates the bearer session token and attaches the caller.
func RequireAuth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractBearer(r)
			if raw == "" {
				handlers.WriteError(w, r, http.StatusUnauthorized, usecase.CodeUnauthorized, "missing or invalid bearer token", nil)
				return
			}

			claims, err := tokens.ParseSessionToken(raw)
			if err != nil {
				handlers.WriteError(w, r, http.StatusUnauthorized, usecase.CodeUnauthorized, "session token is invalid or expired", nil)
				return
			}

			identity := handlers.Identity{
				ID:       claims.Subject,
				Email:    claims.Email,
				Role:     claims.Role,
				FullName: claims.FullName,
			}
			next.ServeHTTP(w, r.WithContext(handlers.WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireRole gates a subtree on the caller's role. Must run after RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := handlers.IdentityFrom(r.Context())
			if !ok {
				handlers.WriteError(w, r, http.StatusUnauthorized, usecase.CodeUnauthorized, "authentication required", nil)
				return
			}
			if identity.Role != role {
				handlers.WriteError(w, r, http.StatusForbidden, usecase.CodeForbidden, "insufficient role for this resource", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is shorthand for the admin subtree.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
