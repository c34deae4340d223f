package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an IP may stay silent before its limiter is
// dropped. A full bucket refills well within it, so eviction never grants a
// client more than it would have had anyway.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	visitors  map[string]*visitor
	perMin    int
	lastSweep time.Time
	now       func() time.Time
	mu        sync.Mutex
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 60
	}
	return &rateLimiterStore{
		visitors:  make(map[string]*visitor),
		perMin:    perMin,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterIdleTTL {
		s.evictIdle(now)
	}

	v, exists := s.visitors[ip]
	if !exists {
		// perMin tokens refilled over a minute, all of them available as burst.
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// evictIdle must be called with mu held.
func (s *rateLimiterStore) evictIdle(now time.Time) {
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) >= limiterIdleTTL {
			delete(s.visitors, ip)
		}
	}
	s.lastSweep = now
}

// RateLimitMiddleware limits requests per IP address. Each call gets its own
// budget so routes can be limited independently.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	store := newRateLimiterStore(perMin)
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.getLimiter(ip).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limited",
				"message": "Rate limit exceeded. Try again later.",
			})
			return
		}
		c.Next()
	}
}
