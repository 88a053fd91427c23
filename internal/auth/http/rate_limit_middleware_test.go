package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitedRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", RateLimitMiddleware(ctx, rps, burst, testLogger()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("requests within the burst pass", func(t *testing.T) {
		router := setupRateLimitedRouter(t, 1, 3)

		for i := 0; i < 3; i++ {
			request := httptest.NewRequest(http.MethodPost, "/login", nil)
			request.RemoteAddr = "10.0.0.1:1234"
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
		}
	})

	t.Run("requests over the burst get 429 with Retry-After", func(t *testing.T) {
		router := setupRateLimitedRouter(t, 0.1, 1)

		first := httptest.NewRequest(http.MethodPost, "/login", nil)
		first.RemoteAddr = "10.0.0.2:1234"
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, first)
		assert.Equal(t, http.StatusNoContent, recorder.Code)

		second := httptest.NewRequest(http.MethodPost, "/login", nil)
		second.RemoteAddr = "10.0.0.2:1234"
		recorder = httptest.NewRecorder()
		router.ServeHTTP(recorder, second)

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
		assert.Contains(t, recorder.Body.String(), "rate_limit_exceeded")
	})

	t.Run("cleanup goroutine exits on context cancellation", func(t *testing.T) {
		store := &rateLimiterStore{rps: 1, burst: 1}
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			store.cleanupStale(ctx, time.Millisecond)
			close(done)
		}()

		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("cleanupStale did not stop after context cancellation")
		}
	})

	t.Run("sources are limited independently", func(t *testing.T) {
		router := setupRateLimitedRouter(t, 0.1, 1)

		first := httptest.NewRequest(http.MethodPost, "/login", nil)
		first.RemoteAddr = "10.0.0.3:1234"
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, first)
		assert.Equal(t, http.StatusNoContent, recorder.Code)

		other := httptest.NewRequest(http.MethodPost, "/login", nil)
		other.RemoteAddr = "10.0.0.4:1234"
		recorder = httptest.NewRecorder()
		router.ServeHTTP(recorder, other)
		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})
}
