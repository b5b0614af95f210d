package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zenithweb/zenith/internal/config"
)

func setupTestHandler(t *testing.T) http.Handler {
	t.Helper()
	router, deps := setupTestRouter(t, time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC))
	return SetupMiddleware(router, deps, config.Application{})
}

func TestCORSPreflight(t *testing.T) {
	t.Run("preflight for an unregistered method combination succeeds", func(t *testing.T) {
		// given a browser preflight for a cross-origin PUT; no OPTIONS route
		// is registered for the path, so the CORS layer must answer it
		handler := setupTestHandler(t)
		req := httptest.NewRequest(http.MethodOptions, "/api/events/1", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

		// when
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight for DELETE succeeds", func(t *testing.T) {
		handler := setupTestHandler(t)
		req := httptest.NewRequest(http.MethodOptions, "/api/activities/1", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	})

	t.Run("cross-origin simple request is answered with the origin echoed", func(t *testing.T) {
		handler := setupTestHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/events/week", nil)
		req.Header.Set("Origin", "https://app.example.com")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestIdMiddleware(t *testing.T) {
	t.Run("generates an id when the request carries none", func(t *testing.T) {
		handler := setupTestHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/events/week", nil)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	})

	t.Run("echoes a caller-supplied id", func(t *testing.T) {
		handler := setupTestHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/events/week", nil)
		req.Header.Set("X-Request-Id", "req-42")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "req-42", rr.Header().Get("X-Request-Id"))
	})
}
