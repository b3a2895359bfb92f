package auth

import (
	"FinTrack/pkg/response"
	"net/http"
)

var (
	ErrEmailAlreadyExists     = response.NewError(http.StatusConflict, "email already exists")
	ErrInvalidEmailOrPassword = response.NewError(http.StatusBadRequest, "email or password is wrong")
	ErrUserNotFound           = response.NewError(http.StatusNotFound, "user not found")
	ErrorInvalidToken         = response.NewError(http.StatusUnauthorized, "invalid token")
	ErrTokenRevoked           = response.NewError(http.StatusUnauthorized, "session has been signed out")
	ErrRegisterUser           = response.NewError(http.StatusInternalServerError, "failed to register user")
)
