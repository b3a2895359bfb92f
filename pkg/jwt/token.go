package jwtPkg

import (
	"FinTrack/internal/entity"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"os"
	"strings"
	"time"
)

const AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"

var ErrMissingClaims = errors.New("token claims are missing required fields")

// Sign issues an HS256 token carrying data plus exp and a fresh jti.
func Sign(Data map[string]interface{}, tokenID string, ExpiredAt time.Duration) (string, int64, error) {
	expiredAt := time.Now().Add(ExpiredAt).Unix()

	JWTSecretKey := os.Getenv(AccessTokenSecret)
	if JWTSecretKey == "" {
		return "", 0, fmt.Errorf("%s not set", AccessTokenSecret)
	}

	claims := jwt.MapClaims{}
	for i, v := range Data {
		claims[i] = v
	}
	claims["exp"] = expiredAt
	claims["jti"] = tokenID

	to := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := to.SignedString([]byte(JWTSecretKey))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("empty Authorization header")
	}

	accessToken, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", errors.New("invalid Authorization format")
	}

	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return "", errors.New("empty token")
	}

	return accessToken, nil
}

func VerifyTokenHeader(c *fiber.Ctx, secretEnvKey string) (*jwt.Token, error) {
	accessToken, err := BearerToken(c.Get("Authorization"))
	if err != nil {
		// Browsers cannot set headers on websocket upgrades.
		accessToken = c.Query("access_token")
		if accessToken == "" {
			return nil, err
		}
	}

	return Parse(accessToken, secretEnvKey)
}

func Parse(accessToken string, secretEnvKey string) (*jwt.Token, error) {
	log := logrus.WithField("func", "Parse")

	JWTSecretKey := os.Getenv(secretEnvKey)
	if JWTSecretKey == "" {
		log.Error("JWT secret environment variable not set")
		return nil, errors.New("JWT secret not configured")
	}

	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			log.WithField("method", token.Header["alg"]).Error("Unexpected signing method")
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(JWTSecretKey), nil
	})
	if err != nil {
		log.WithError(err).Debug("Failed to parse JWT token")
		return nil, err
	}

	return token, nil
}

// ClaimsToUser reads the identity fields out of verified claims.
func ClaimsToUser(claims jwt.MapClaims) (entity.UserLoginData, error) {
	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)
	tokenID, _ := claims["jti"].(string)
	if id == "" || email == "" || tokenID == "" {
		return entity.UserLoginData{}, ErrMissingClaims
	}

	user := entity.UserLoginData{
		ID:       id,
		Email:    email,
		Username: username,
		TokenID:  tokenID,
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		user.ExpiresAt = exp.Time
	}

	return user, nil
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	userData := c.Locals("user")

	user, ok := userData.(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}
