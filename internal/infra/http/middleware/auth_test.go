package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/http/handlers"
	"github.com/ascendhq/concierge-api/internal/infra/token"
)

func sessionFor(t *testing.T, svc *token.Service, role string) string {
	t.Helper()
	signed, err := svc.NewSessionToken(&entity.User{
		ID: "u1", Email: "ana@example.com", Role: role, FullName: "Ana Torres",
	})
	assert.NoError(t, err)
	return signed
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	svc := token.NewService("test-secret")

	var got handlers.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = handlers.IdentityFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+sessionFor(t, svc, entity.RoleClient))
	rec := httptest.NewRecorder()

	RequireAuth(svc)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, entity.RoleClient, got.Role)
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	svc := token.NewService("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	rec := httptest.NewRecorder()
	RequireAuth(svc)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsForeignToken(t *testing.T) {
	mine := token.NewService("test-secret")
	theirs := token.NewService("other-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+sessionFor(t, theirs, entity.RoleClient))
	rec := httptest.NewRecorder()

	RequireAuth(mine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminForbidsClients(t *testing.T) {
	svc := token.NewService("test-secret")

	chain := RequireAuth(svc)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/consultations", nil)
	req.Header.Set("Authorization", "Bearer "+sessionFor(t, svc, entity.RoleClient))
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	svc := token.NewService("test-secret")

	called := false
	chain := RequireAuth(svc)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/consultations", nil)
	req.Header.Set("Authorization", "Bearer "+sessionFor(t, svc, entity.RoleAdmin))
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
