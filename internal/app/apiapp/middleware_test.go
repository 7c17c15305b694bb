package apiapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
	authsvc "github.com/Sankalptw/incu-meta/internal/services/auth"
)

func TestRequireRoleAllowsCaseInsensitiveMatch(t *testing.T) {
	mw := RequireRole(enums.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		AccountID: "acc-1",
		Role:      enums.Role("ADMIN"),
	}))
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestRequireRoleRejectsForbiddenRole(t *testing.T) {
	mw := RequireRole(enums.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		AccountID: "acc-2",
		Role:      enums.RoleStartup,
	}))
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called for forbidden role")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusForbidden)
	}
}

func TestRequireRoleRejectsAnonymousRequest(t *testing.T) {
	mw := RequireRole(enums.RoleStartup)

	req := httptest.NewRequest(http.MethodGet, "/api/startup/profile", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called without identity")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewarePopulatesIdentity(t *testing.T) {
	tokens := authsvc.NewJWTManager("test-secret", time.Hour)
	token, _, err := tokens.GenerateAccessToken("acc-7", enums.RoleIncubator)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	mw := AuthMiddleware(tokens, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/matching/incoming", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := authsvc.IdentityFromContext(r.Context())
		if !ok {
			t.Fatalf("identity missing in context")
		}
		if identity.AccountID != "acc-7" || identity.Role != enums.RoleIncubator {
			t.Fatalf("identity mismatch: %+v", identity)
		}
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	tokens := authsvc.NewJWTManager("test-secret", time.Hour)
	mw := AuthMiddleware(tokens, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/startup/profile", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called without a token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}
