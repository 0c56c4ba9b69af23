package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client address.
type IPRateLimiter struct {
	rps   rate.Limit
	burst int
	clock func() time.Time

	mu      sync.Mutex
	clients map[string]*clientLimiter
	pruned  time.Time
}

// NewIPRateLimiter returns nil when rps is not positive, which disables limiting.
func NewIPRateLimiter(rps int) *IPRateLimiter {
	if rps <= 0 {
		return nil
	}
	return &IPRateLimiter{
		rps:     rate.Limit(rps),
		burst:   rps * 2,
		clock:   time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// Allow reports whether a request from ip may proceed.
func (l *IPRateLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.clients[ip]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = entry
	}
	entry.lastSeen = now
	l.pruneLocked(now)

	return entry.limiter.AllowN(now, 1)
}

func (l *IPRateLimiter) pruneLocked(now time.Time) {
	if now.Sub(l.pruned) < limiterIdleTTL {
		return
	}
	l.pruned = now
	for ip, entry := range l.clients {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.clients, ip)
		}
	}
}

// RateLimit rejects requests over the per-address budget with 429.
func RateLimit(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			abort(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
