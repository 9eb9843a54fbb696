package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"artist-booking/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupCORSTestRouter(origins []string) http.Handler {
	router := newTestRouter()
	router.POST("/api/v1/requests", func(c *gin.Context) { c.Status(http.StatusCreated) })
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return handler.WithCORS(router, origins)
}

func TestWithCORS(t *testing.T) {
	t.Run("Preflight on request intake", func(t *testing.T) {
		h := setupCORSTestRouter(nil)

		req, _ := http.NewRequest("OPTIONS", "/api/v1/requests", nil)
		req.Header.Set("Origin", "https://booking.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type,idempotency-key")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("Simple request gets origin header", func(t *testing.T) {
		h := setupCORSTestRouter([]string{"https://booking.example.com"})

		req := createJSONHTTPRequest("POST", "/api/v1/requests", gin.H{})
		req.Header.Set("Origin", "https://booking.example.com")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "https://booking.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Failed - origin not allowed", func(t *testing.T) {
		h := setupCORSTestRouter([]string{"https://booking.example.com"})

		req := createJSONHTTPRequest("POST", "/api/v1/requests", gin.H{})
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Outside /api is untouched", func(t *testing.T) {
		h := setupCORSTestRouter(nil)

		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "https://booking.example.com")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
