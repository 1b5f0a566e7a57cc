package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"tunedeck.org/tunedeck/models"
)

func performRequest(m *Middleware, chain echo.HandlerFunc, header http.Header) error {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return chain(c)
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAuthDisabled(t *testing.T) {
	cfg := testConfig(time.Hour)
	cfg.Security.AuthEnabled = false
	m := NewMiddleware(cfg)

	if err := performRequest(m, m.RequireAuth(okHandler), nil); err != nil {
		t.Errorf("expected pass-through with auth disabled, got %v", err)
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	m := NewMiddleware(testConfig(time.Hour))

	err := performRequest(m, m.RequireAuth(okHandler), nil)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	cfg := testConfig(time.Hour)
	m := NewMiddleware(cfg)

	token, err := NewJWTService(cfg).GenerateToken("bench-1", models.RoleViewer)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	var claims *Claims
	chain := m.RequireAuth(func(c echo.Context) error {
		claims, _ = GetClaims(c)
		return okHandler(c)
	})

	if err := performRequest(m, chain, header); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if claims == nil || claims.Name != "bench-1" {
		t.Errorf("claims not stored in context: %+v", claims)
	}
}

func TestRequireAuthAPIKey(t *testing.T) {
	cfg := testConfig(time.Hour)
	cfg.Security.APIKeys = []string{"tdk_test-key"}
	m := NewMiddleware(cfg)

	header := http.Header{}
	header.Set(HeaderAPIKey, "tdk_test-key")

	var claims *Claims
	chain := m.RequireAuth(func(c echo.Context) error {
		claims, _ = GetClaims(c)
		return okHandler(c)
	})

	if err := performRequest(m, chain, header); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if claims == nil || len(claims.Roles) != 1 || claims.Roles[0] != models.RoleOperator {
		t.Errorf("API key should grant operator role, got %+v", claims)
	}

	header.Set(HeaderAPIKey, "tdk_wrong-key")
	err := performRequest(m, m.RequireAuth(okHandler), header)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad key, got %v", err)
	}
}

func TestRequireAdminRejectsOperator(t *testing.T) {
	cfg := testConfig(time.Hour)
	m := NewMiddleware(cfg)

	token, err := NewJWTService(cfg).GenerateToken("bench-1", models.RoleOperator)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	chain := m.RequireAuth(m.RequireAdmin(okHandler))
	err = performRequest(m, chain, header)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestRequireRoleAuthenticatesDirectly(t *testing.T) {
	cfg := testConfig(time.Hour)
	m := NewMiddleware(cfg)

	token, err := NewJWTService(cfg).GenerateToken("root", models.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	// Role middleware used without RequireAuth in front must still
	// resolve the caller from the request.
	if err := performRequest(m, m.RequireAdmin(okHandler), header); err != nil {
		t.Errorf("expected admin token to pass, got %v", err)
	}

	err = performRequest(m, m.RequireAdmin(okHandler), nil)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %v", err)
	}
}

func TestRequireWriteAllowsOperator(t *testing.T) {
	cfg := testConfig(time.Hour)
	m := NewMiddleware(cfg)

	token, err := NewJWTService(cfg).GenerateToken("bench-1", models.RoleOperator)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	chain := m.RequireAuth(m.RequireWrite(okHandler))
	if err := performRequest(m, chain, header); err != nil {
		t.Errorf("expected operator to pass write check, got %v", err)
	}
}
