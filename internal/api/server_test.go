package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunedeck.org/tunedeck/internal/config"
	"tunedeck.org/tunedeck/internal/store"
)

// newTestServer builds a server over a fresh seeded store with auth and
// rate limiting disabled.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		Server:      config.ServerConfig{Host: "127.0.0.1", Port: 8095},
		Store:       config.StoreConfig{ContentRoot: st.ContentRoot()},
		Bus:         config.BusConfig{BufferSize: 100},
		Diagnostics: config.DiagnosticsConfig{HistoryLimit: 50},
		Security: config.SecurityConfig{
			AllowedOrigins: []string{"*"},
		},
	}

	return New(cfg, st)
}

// doRequest performs an in-process request against the server. A non-nil
// body is JSON-encoded.
func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorded JSON response into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)

	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "tunedeck", body["service"])
	assert.Equal(t, float64(5), body["vehicles"])
	assert.Equal(t, float64(0), body["buses"])
}

func TestHealthCheckAtRoot(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	// Generate at least one counted request first.
	doRequest(t, s, http.MethodGet, "/health", nil)

	rec := doRequest(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Body.String(), "tunedeck_websocket_clients")
	assert.Contains(t, rec.Body.String(), "tunedeck_http_requests_total")
}

func TestUnknownRouteReturnsJSONError(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr APIError
	decodeBody(t, rec, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
	assert.Equal(t, "Resource not found", apiErr.Message)
}

func TestContentTypeEnforced(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles", bytes.NewBufferString(`{"make":"BMW","model":"M2"}`))
	req.Header.Set(echo.HeaderContentType, "text/plain")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Content-Type")
}

func TestAcceptHeaderEnforced(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	req.Header.Set(echo.HeaderAccept, "text/html")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Accept header")
}

func TestSecurityHeadersPresent(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestWebSocketStats(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/ws/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, float64(0), body["connected_clients"])
}
