package handlers

import (
	"context"
	"net/http"

	"github.com/ascendhq/concierge-api/internal/usecase"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller. The API trusts these claims verbatim
// and only ever branches on Role.
type Identity struct {
	ID       string
	Email    string
	Role     string
	FullName string
}

// WithIdentity attaches the caller to the request context. Called by the
// auth middleware after session-token validation.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the caller attached by the auth middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// mustIdentity is for handlers behind RequireAuth; a missing identity means
// the route is wired without the middleware, which is a server bug.
func mustIdentity(w http.ResponseWriter, r *http.Request) (Identity, bool) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		WriteError(w, r, http.StatusUnauthorized, usecase.CodeUnauthorized, "authentication required", nil)
	}
	return id, ok
}
