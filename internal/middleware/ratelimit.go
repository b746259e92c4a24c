package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/octobees/hireloop/api/internal/config"
)

// AIRateLimiter applies a token bucket per client to routes that call the
// language model. Clients are keyed by user id when authenticated, otherwise by IP.
func AIRateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	limiters := newClientLimiters(perRequest, cfg.Requests, cfg.Interval, time.Now)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := UserIDFromContext(c)
			if key == "" {
				key = c.RealIP()
			}

			if !limiters.allow(key) {
				c.Response().Header().Set("Retry-After", retryAfter(perRequest))
				return reject(c, http.StatusTooManyRequests, "ai rate limit exceeded")
			}

			return next(c)
		}
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters holds one bucket per client. A client idle for longer than
// idle has a full bucket again, so its entry is dropped on the next sweep.
type clientLimiters struct {
	mu        sync.Mutex
	every     time.Duration
	burst     int
	idle      time.Duration
	now       func() time.Time
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func newClientLimiters(every time.Duration, burst int, idle time.Duration, now func() time.Time) *clientLimiters {
	return &clientLimiters{
		every:   every,
		burst:   burst,
		idle:    idle,
		now:     now,
		clients: make(map[string]*clientLimiter),
	}
}

func (l *clientLimiters) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) >= l.idle {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Every(l.every), l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *clientLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func retryAfter(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
