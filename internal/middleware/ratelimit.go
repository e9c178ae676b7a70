package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter throttles form submissions per client address with one token
// bucket per address. Safe methods are never limited.
type RateLimiter struct {
	limit rate.Limit
	burst int
	log   *zap.Logger
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// idleTTL is how long an address may stay silent before its bucket is dropped.
const idleTTL = 10 * time.Minute

// sweepInterval bounds how often idle buckets are looked for.
const sweepInterval = time.Minute

// NewRateLimiter allows perMinute submissions per address on average, with
// bursts of up to burst.
func NewRateLimiter(perMinute, burst int, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
		log:     log,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

// Handler rejects over-limit POST, PUT, PATCH and DELETE requests with 429.
// Wire it after chimiddleware.RealIP so RemoteAddr is the client address.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		addr := clientAddr(r)
		if !l.allow(addr) {
			l.log.Warn("rate limit exceeded",
				zap.String("client_ip", addr),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many attempts. Please wait a minute and try again.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > idleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[addr]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[addr] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
