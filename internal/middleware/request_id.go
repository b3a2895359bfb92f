package middleware

import (
	"FinTrack/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"time"
)

const (
	RequestIDKey       = "X-Request-ID"
	maxRequestIDLength = 64
)

// NewRequestIDMiddleware echoes a sane client supplied X-Request-ID and otherwise
// assigns a ULID.
func NewRequestIDMiddleware() fiber.Handler {
	ids := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)
		if !validRequestID(requestID) {
			requestID, _ = ids.NewULIDFromTimestamp(time.Now())
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}

// validRequestID accepts short ids made of letters, digits, '-', '_' and '.' so that
// nothing odd reaches the logs or response headers.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
