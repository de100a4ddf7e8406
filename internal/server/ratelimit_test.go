package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/goliatone/go-leadform/internal/logging"
)

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, time.Minute, logging.NoOp())
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:2000"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.2:1000"))
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1, 20*time.Minute, logging.NoOp())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("a")
	now = now.Add(15 * time.Minute)
	rl.allow("b")
	now = now.Add(10 * time.Minute)

	assert.Equal(t, 1, rl.Cleanup())
	assert.Len(t, rl.limiters, 1)
}

func TestRateLimiterCleanupWithoutSessionTTL(t *testing.T) {
	rl := NewRateLimiter(1, 5, 0, logging.NoOp())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		assert.True(t, rl.allow("a"))
	}
	assert.False(t, rl.allow("a"))

	now = now.Add(time.Minute)
	assert.Equal(t, 0, rl.Cleanup())
	assert.Len(t, rl.limiters, 1)

	now = now.Add(minLimiterIdle)
	assert.Equal(t, 1, rl.Cleanup())
}

func TestRateLimiterKeepsSlowRefillingClients(t *testing.T) {
	// one token per hour: an empty bucket needs five hours to refill
	rl := NewRateLimiter(1.0/3600, 5, 0, logging.NoOp())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("a")
	now = now.Add(2 * time.Hour)
	assert.Equal(t, 0, rl.Cleanup())

	now = now.Add(3 * time.Hour)
	assert.Equal(t, 1, rl.Cleanup())
}
