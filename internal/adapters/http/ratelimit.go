package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

type RateLimit struct {
	RequestsPerMinute float64
	Burst             int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client and route group. Idle
// buckets are swept lazily.
type RateLimiter struct {
	limits    map[string]RateLimit
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	idleTTL   time.Duration
	clockNow  func() time.Time
}

func NewRateLimiter(limits map[string]RateLimit) *RateLimiter {
	return &RateLimiter{
		limits:   limits,
		visitors: make(map[string]*visitor),
		idleTTL:  10 * time.Minute,
		clockNow: time.Now,
	}
}

// Middleware limits the named group. Groups without a configured limit pass through.
func (l *RateLimiter) Middleware(group string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit, ok := l.limits[group]
			if !ok || limit.RequestsPerMinute <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			if !l.allow(group+"|"+clientID(r), limit) {
				writeMappedError(r.Context(), w, "rate_limit_"+group, domain.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *RateLimiter) allow(key string, cfg RateLimit) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clockNow()
	if now.Sub(l.lastSweep) > time.Minute {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.idleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute/60.0), burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// clientID relies on middleware.RealIP having rewritten RemoteAddr.
func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
