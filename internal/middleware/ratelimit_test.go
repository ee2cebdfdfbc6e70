package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerClientBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return fixed }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// another client has its own bucket
	assert.True(t, rl.Allow("10.0.0.2"))

	fixed = fixed.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_DropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return fixed }

	rl.Allow("a")
	fixed = fixed.Add(time.Hour)
	rl.Allow("b")

	_, stillThere := rl.clients["a"]
	assert.False(t, stillThere)
}

func TestRateLimiter_SweepsOncePerIdleInterval(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(d time.Duration, key string) {
		rl.now = func() time.Time { return t0.Add(d) }
		rl.Allow(key)
	}

	at(0, "a")
	at(9*time.Minute, "b")
	at(15*time.Minute, "c")
	assert.NotContains(t, rl.clients, "a")
	assert.Contains(t, rl.clients, "b")

	// b has been idle for 11m, but the last sweep was only 5m ago
	at(20*time.Minute, "d")
	assert.Contains(t, rl.clients, "b")

	at(25*time.Minute, "e")
	assert.NotContains(t, rl.clients, "b")
	assert.Len(t, rl.clients, 3)
}

func TestRateLimiter_IgnoresForwardedHeaders(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "192.0.2.7:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.9.9.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = "192.0.2.1:4000"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}
