package authService

import (
	"FinTrack/internal/api/auth"
	"FinTrack/internal/entity"
	contextPkg "FinTrack/pkg/context"
	"FinTrack/pkg/response"
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"strings"
)

func (s *userDomainImpl) RegisterUser(c context.Context, req auth.CreateUserRequest) (auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.UserResponse{}, auth.ErrRegisterUser
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return auth.UserResponse{}, auth.ErrRegisterUser
	}

	now := s.now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return auth.UserResponse{}, auth.ErrRegisterUser
	}

	user := entity.User{
		ID:        id,
		Email:     NormalizeEmail(req.Email),
		Name:      strings.TrimSpace(req.Name),
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Users.CreateUser(c, user); err != nil {
		if errors.Is(err, auth.ErrEmailAlreadyExists) {
			return auth.UserResponse{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create user")
		return auth.UserResponse{}, response.Wrap(auth.ErrRegisterUser, err.Error())
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("User registered")

	return MakeUserResponse(user), nil
}

func (s *userDomainImpl) GetByID(c context.Context, id string) (auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.UserResponse{}, err
	}

	user, err := repo.Users.GetByID(c, id)
	if err != nil {
		return auth.UserResponse{}, err
	}

	return MakeUserResponse(user), nil
}
