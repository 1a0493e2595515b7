package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"utsav/pkg/client"
	"utsav/pkg/config"
	"utsav/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoHandler struct{}

func (echoHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/echo", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusCreated)
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "5000",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		RequestTimeout:     time.Second,
		IdempotencyTTL:     time.Minute,
		MaxRequestSize:     1024,
		ShutdownTimeout:    time.Second,
		Log:                logger.Discard(),
		Client:             client.NewClient(),
	}
}

func newTestApp(t *testing.T) http.Handler {
	t.Helper()
	a := NewApplication(testConfig())
	a.SetApp(echoHandler{})
	t.Cleanup(a.idempotencyStore.Stop)
	return a.Handler()
}

func TestApplication_HealthAndReady(t *testing.T) {
	h := newTestApp(t)

	for _, path := range []string{"/health", "/ready"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestApplication_RoutesThroughMiddleware(t *testing.T) {
	h := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApplication_RejectsNonJSONBody(t *testing.T) {
	h := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestApplication_RejectsUnknownOrigin(t *testing.T) {
	h := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://elsewhere.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("no primary") }

func TestHealthHandler_ReadyUnavailable(t *testing.T) {
	router := httprouter.New()
	NewHealthHandler(failingPinger{}, logger.Discard()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"error"`)
}
