package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/travelxplore/site/internal/middleware"
)

func post(h http.Handler, addr string) int {
	req := httptest.NewRequest(http.MethodPost, "/login/", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BurstThen429(t *testing.T) {
	h := middleware.NewRateLimiter(1, 2, zap.NewNop()).Handler(trivialHandler)

	assert.Equal(t, http.StatusOK, post(h, "10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, post(h, "10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, post(h, "10.0.0.1:5002"), "same host, different port")
}

func TestRateLimiter_PerAddress(t *testing.T) {
	h := middleware.NewRateLimiter(1, 1, zap.NewNop()).Handler(trivialHandler)

	assert.Equal(t, http.StatusOK, post(h, "10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, post(h, "10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, post(h, "10.0.0.2:5000"))
}

func TestRateLimiter_GetNeverLimited(t *testing.T) {
	h := middleware.NewRateLimiter(1, 1, zap.NewNop()).Handler(trivialHandler)

	for range 5 {
		req := httptest.NewRequest(http.MethodGet, "/login/", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
