package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

// runMiddleware executes a middleware chain ending in a trivial handler and
// reports the returned error, if any.
func runMiddleware(mw echo.MiddlewareFunc, req *http.Request) error {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestValidateIDFormat(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		wantOK bool
	}{
		{"valid id", "vehicle-bmw-m3-g80", true},
		{"too short", "ab", false},
		{"contains space", "vehicle bmw", false},
		{"minimum length", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			handler := ValidateIDFormat(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)
			if tt.wantOK && err != nil {
				t.Errorf("id %q rejected: %v", tt.id, err)
			}
			if !tt.wantOK && err == nil {
				t.Errorf("id %q accepted, want rejection", tt.id)
			}
		})
	}
}

func TestValidateQueryParamsLevel(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?level=error", nil)
	if err := runMiddleware(ValidateQueryParams, req); err != nil {
		t.Errorf("level=error rejected: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/?level=debug", nil)
	if err := runMiddleware(ValidateQueryParams, req); err == nil {
		t.Error("level=debug accepted, want rejection")
	}
}

func TestValidateQueryParamsCategory(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?category=stage2", nil)
	if err := runMiddleware(ValidateQueryParams, req); err != nil {
		t.Errorf("category=stage2 rejected: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/?category=stage9", nil)
	if err := runMiddleware(ValidateQueryParams, req); err == nil {
		t.Error("category=stage9 accepted, want rejection")
	}
}

func TestValidateContentTypeAllowsEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if err := runMiddleware(ValidateContentType, req); err != nil {
		t.Errorf("empty body rejected: %v", err)
	}
}

func TestValidateAcceptHeaderWildcard(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAccept, "*/*")
	if err := runMiddleware(ValidateAcceptHeader, req); err != nil {
		t.Errorf("wildcard accept rejected: %v", err)
	}
}
