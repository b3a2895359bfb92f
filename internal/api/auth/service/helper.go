package authService

import (
	"FinTrack/internal/api/auth"
	"FinTrack/internal/entity"
	"os"
	"strings"
	"time"
)

const defaultAccessTokenTTL = 24 * time.Hour

// accessTokenTTL reads JWT_ACCESS_TOKEN_TTL as a Go duration such as "12h".
func accessTokenTTL() time.Duration {
	ttl, err := time.ParseDuration(os.Getenv("JWT_ACCESS_TOKEN_TTL"))
	if err != nil || ttl <= 0 {
		return defaultAccessTokenTTL
	}
	return ttl
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func MakeUserData(user entity.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Name,
	}
}

func MakeUserResponse(user entity.User) auth.UserResponse {
	return auth.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
