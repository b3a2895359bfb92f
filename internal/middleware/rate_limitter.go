package middleware

import (
	"FinTrack/pkg/handlerUtil"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"sync"
	"time"
)

// A limiter idle this long has refilled its burst, so dropping it changes nothing.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP and forgets idle ones.
type rateLimiter struct {
	mutex     sync.Mutex
	visitors  map[string]*visitor
	rate      rate.Limit
	burstSize int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	return &rateLimiter{
		visitors:  make(map[string]*visitor),
		rate:      reqRate,
		burstSize: burstSize,
		idleTTL:   limiterIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (r *rateLimiter) limiterFor(ip string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= r.idleTTL {
		r.sweep(now)
	}

	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.rate, r.burstSize)}
		r.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter
}

// sweep must be called with the mutex held.
func (r *rateLimiter) sweep(now time.Time) {
	for ip, v := range r.visitors {
		if now.Sub(v.lastSeen) >= r.idleTTL {
			delete(r.visitors, ip)
		}
	}
	r.lastSweep = now
}

func (r *rateLimiter) size() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.visitors)
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()

	if !m.rateLimitter.limiterFor(clientIP).Allow() {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"ip":         clientIP,
			"path":       ctx.Path(),
		}).Warn("Too many requests")
		return ctx.Status(fiber.StatusTooManyRequests).JSON(handlerUtil.ErrorResponse{
			Error: "Too many requests",
			Code:  "TOO_MANY_REQUESTS",
		})
	}

	return ctx.Next()
}
