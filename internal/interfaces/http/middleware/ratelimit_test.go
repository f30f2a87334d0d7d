package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func TestKeyedLimiter_BurstThenRefill(t *testing.T) {
	clock := newClock()
	l := NewKeyedLimiter(1, 2, time.Minute)

	ok, remaining, _ := l.Allow("a", clock.Now())
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)
	ok, _, _ = l.Allow("a", clock.Now())
	assert.True(t, ok)

	ok, _, retry := l.Allow("a", clock.Now())
	assert.False(t, ok)
	assert.InDelta(t, time.Second, retry, float64(10*time.Millisecond))

	ok, _, _ = l.Allow("b", clock.Now())
	assert.True(t, ok, "keys are independent")

	clock.Advance(time.Second)
	ok, _, _ = l.Allow("a", clock.Now())
	assert.True(t, ok)
}

func TestKeyedLimiter_SweepsIdleKeys(t *testing.T) {
	clock := newClock()
	l := NewKeyedLimiter(1, 1, time.Minute)

	l.Allow("a", clock.Now())
	l.Allow("b", clock.Now())
	require.Equal(t, 2, l.Len())

	clock.Advance(30 * time.Second)
	l.Allow("b", clock.Now())
	clock.Advance(31 * time.Second)
	l.Allow("c", clock.Now())

	assert.Equal(t, 2, l.Len(), "a idle past TTL is dropped, b and c remain")
}

func TestRateLimit_Middleware(t *testing.T) {
	clock := newClock()
	cfg := DefaultRateLimitConfig()
	cfg.RequestsPerSecond = 0.5
	cfg.BurstSize = 1
	cfg.Now = clock.Now
	h := RateLimit(cfg)(okHandler())

	do := func(path, addr string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	w := do("/api/v1/lawyers", "10.0.0.1:5000")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = do("/api/v1/lawyers", "10.0.0.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "port does not change the key")
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "too many requests")

	assert.Equal(t, http.StatusOK, do("/api/v1/lawyers", "10.0.0.2:5000").Code)
	assert.Equal(t, http.StatusOK, do("/healthz", "10.0.0.1:5000").Code, "skipped path")

	clock.Advance(2 * time.Second)
	assert.Equal(t, http.StatusOK, do("/api/v1/lawyers", "10.0.0.1:5000").Code)
}

func TestClientIPKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.7:1234"
	assert.Equal(t, "192.0.2.7", ClientIPKey(r))
	r.RemoteAddr = "192.0.2.8"
	assert.Equal(t, "192.0.2.8", ClientIPKey(r))
}

//Personal.AI order the ending
