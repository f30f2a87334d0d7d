package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	metrics "github.com/turtacn/LexConnect/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// RateLimitConfig holds configuration for the rate limit middleware.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate per key.
	RequestsPerSecond float64
	// BurstSize is the number of requests a fresh key may make at once.
	BurstSize int
	// KeyFunc extracts the rate limit key.  Defaults to the client IP.
	KeyFunc func(r *http.Request) string
	// SkipPaths bypass rate limiting.
	SkipPaths []string
	// IdleTTL is how long an untouched key is kept before it is swept.
	IdleTTL time.Duration
	// Metrics, when set, counts rejected requests.
	Metrics *metrics.AppMetrics
	// Now is the clock; tests override it.
	Now func() time.Time
}

// DefaultRateLimitConfig returns a sensible default rate limit configuration.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		KeyFunc:           ClientIPKey,
		SkipPaths:         []string{"/healthz", "/readyz", "/metrics"},
		IdleTTL:           10 * time.Minute,
	}
}

// ClientIPKey keys requests by remote host.  It expects chi's RealIP
// middleware to have rewritten RemoteAddr for proxied requests.
func ClientIPKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// ─────────────────────────────────────────────────────────────────────────────
// Keyed limiter
// ─────────────────────────────────────────────────────────────────────────────

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter holds one token bucket per key.  Idle keys are swept during
// Allow calls, so no background goroutine is needed.
type KeyedLimiter struct {
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewKeyedLimiter creates a limiter allowing rps sustained with burst.
func NewKeyedLimiter(rps float64, burst int, idleTTL time.Duration) *KeyedLimiter {
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &KeyedLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  idleTTL,
		visitors: make(map[string]*visitor),
	}
}

// Allow reports whether key may proceed at now and, if not, how long it
// should wait.  remaining is the whole tokens left after the decision.
func (l *KeyedLimiter) Allow(key string, now time.Time) (ok bool, remaining int, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)
	v, found := l.visitors[key]
	if !found {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	if v.limiter.AllowN(now, 1) {
		return true, int(math.Max(0, v.limiter.TokensAt(now))), 0
	}
	wait := time.Second
	if l.limit > 0 {
		missing := 1 - v.limiter.TokensAt(now)
		wait = time.Duration(missing / float64(l.limit) * float64(time.Second))
	}
	return false, 0, wait
}

// sweep drops idle visitors at most once per idleTTL.  Caller holds mu.
func (l *KeyedLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idleTTL {
			delete(l.visitors, k)
		}
	}
	l.lastSweep = now
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// ─────────────────────────────────────────────────────────────────────────────
// Middleware
// ─────────────────────────────────────────────────────────────────────────────

// RateLimit returns middleware enforcing config per client key.  Rejected
// requests get 429 with Retry-After.
func RateLimit(config RateLimitConfig) func(http.Handler) http.Handler {
	limiter := NewKeyedLimiter(config.RequestsPerSecond, config.BurstSize, config.IdleTTL)
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}
	keyFunc := config.KeyFunc
	if keyFunc == nil {
		keyFunc = ClientIPKey
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	m := config.Metrics
	if m == nil {
		m = metrics.NewNopMetrics()
	}
	limitHeader := strconv.Itoa(config.BurstSize)
	body, _ := json.Marshal(map[string]string{
		"code":    errors.ErrCodeTooManyRequests.String(),
		"message": errors.DefaultMessageForCode(errors.ErrCodeTooManyRequests),
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			ok, remaining, retry := limiter.Allow(keyFunc(r), now())
			w.Header().Set("X-RateLimit-Limit", limitHeader)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			m.HTTPRateLimited.WithLabelValues(routePattern(r)).Inc()
			secs := int(math.Ceil(retry.Seconds()))
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write(body)
		})
	}
}

//Personal.AI order the ending
