package middleware

import (
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	clock := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(50, 100)
	limiter.lastSweep = clock
	limiter.now = func() time.Time { return clock }

	for i := 0; i < 1000; i++ {
		limiter.limiterFor(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	first := limiter.limiterFor("192.168.1.1")
	if limiter.limiterFor("192.168.1.1") != first {
		t.Error("same IP got a different limiter")
	}
	busy := limiter.size()

	clock = clock.Add(limiterIdleTTL / 2)
	limiter.limiterFor("192.168.1.1")

	clock = clock.Add(limiterIdleTTL/2 + time.Second)
	limiter.limiterFor("192.168.1.2")

	if got := limiter.size(); got != 2 {
		t.Errorf("visitors after sweep = %d, want 2 (had %d)", got, busy)
	}
}

func newRateLimitedApp(burst int) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m := &middleware{
		rateLimitter:        newRateLimiter(0.001, burst),
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
	}

	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Post("/login", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRateLimiterRejectsAfterBurst(t *testing.T) {
	app := newRateLimitedApp(2)

	want := []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}
	for i, status := range want {
		res, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != status {
			t.Errorf("request %d status = %d, want %d", i, res.StatusCode, status)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	app := newRateLimitedApp(10)

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"client id kept", "req-42.a_b", true},
		{"missing id generated", "", false},
		{"id with space replaced", "abc def", false},
		{"over long id replaced", strings.Repeat("x", maxRequestIDLength+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/login", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDKey, tt.incoming)
			}
			res, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}

			got := res.Header.Get(RequestIDKey)
			if tt.keep && got != tt.incoming {
				t.Errorf("request id = %q, want %q", got, tt.incoming)
			}
			if !tt.keep && (got == tt.incoming || !validRequestID(got)) {
				t.Errorf("request id = %q, want a fresh ULID", got)
			}
		})
	}
}
