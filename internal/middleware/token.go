package middleware

import (
	jwtPkg "FinTrack/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	requestID := m.GetRequestID(ctx)

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, jwtPkg.AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"client_ip":  ctx.IP(),
			"error":      err.Error(),
		}).Warn("Token verification failed")
		return unauthorized(ctx)
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      "Invalid token claims",
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	user, err := jwtPkg.ClaimsToUser(claims)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	if m.revocations != nil {
		revoked, err := m.revocations.IsTokenRevoked(ctx.Context(), user.TokenID)
		if err != nil {
			m.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to check token revocation")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Authentication temporarily unavailable",
			})
		}
		if revoked {
			m.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    user.ID,
			}).Warn("Revoked token used")
			return unauthorized(ctx)
		}
	}

	ctx.Locals("user", user)

	m.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Debug("Authentication successful")
	return ctx.Next()
}
