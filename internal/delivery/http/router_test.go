package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Pesokrava/storefront_catalog/internal/config"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
)

func testRouter(checks map[string]func(ctx context.Context) error) http.Handler {
	cfg := &config.Config{Server: config.ServerConfig{
		RequestTimeout: time.Second,
		AllowedOrigins: []string{"http://localhost:3000"},
	}}
	return NewRouter(Handlers{Checks: checks}, cfg, logger.New("test")).Setup()
}

func TestHealth_AllChecksPass(t *testing.T) {
	h := testRouter(map[string]func(ctx context.Context) error{
		"postgres": func(context.Context) error { return nil },
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "healthy", "checks": {"postgres": "ok"}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Content-Type"))
}

func TestHealth_FailingCheck(t *testing.T) {
	h := testRouter(map[string]func(ctx context.Context) error{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status": "unhealthy", "checks": {"postgres": "ok", "redis": "unavailable"}}`, w.Body.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
