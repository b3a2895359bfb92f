package authService

import (
	"FinTrack/internal/api/auth"
	"FinTrack/internal/entity"
	contextPkg "FinTrack/pkg/context"
	jwtPkg "FinTrack/pkg/jwt"
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"time"
)

func (s *authDomainImpl) Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.LoginUserResponse{}, err
	}

	user, err := repo.Users.GetByEmail(c, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Login for unknown email")
			return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get user by email")
		return auth.LoginUserResponse{}, err
	}

	if err := s.bcryptUtils.ComparePassword(user.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
		}).Warn("Password comparison failed")
		return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
	}

	tokenID, err := s.utils.NewULIDFromTimestamp(s.now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate token id")
		return auth.LoginUserResponse{}, err
	}

	token, expired, err := jwtPkg.Sign(MakeUserData(user), tokenID, s.tokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign token")
		return auth.LoginUserResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("Token created")

	return auth.LoginUserResponse{
		AccessToken:      token,
		ExpiresInMinutes: time.Unix(expired, 0).Sub(s.now()).Minutes(),
	}, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *authDomainImpl) Logout(c context.Context, user entity.UserLoginData) error {
	requestID := contextPkg.GetRequestID(c)

	if user.TokenID == "" {
		return auth.ErrorInvalidToken
	}

	ttl := user.ExpiresAt.Sub(s.now())
	if user.ExpiresAt.IsZero() {
		ttl = s.tokenTTL
	}

	if err := s.redisServer.RevokeToken(c, user.TokenID, ttl); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to revoke token")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("User signed out")

	return nil
}
