package authService

import (
	"FinTrack/internal/api/auth"
	authRepository "FinTrack/internal/api/auth/repository"
	"FinTrack/internal/entity"
	"FinTrack/pkg/bcrypt"
	"FinTrack/pkg/redis"
	"FinTrack/pkg/utils"
	"context"
	"github.com/sirupsen/logrus"
	"time"
)

type AuthService interface {
	User() UserDomain
	Auth() AuthDomain
}

type UserDomain interface {
	RegisterUser(c context.Context, req auth.CreateUserRequest) (auth.UserResponse, error)
	GetByID(c context.Context, id string) (auth.UserResponse, error)
}

type AuthDomain interface {
	Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
	Logout(c context.Context, user entity.UserLoginData) error
}

type authService struct {
	userDomain UserDomain
	authDomain AuthDomain
}

func (a *authService) User() UserDomain {
	return a.userDomain
}

func (a *authService) Auth() AuthDomain {
	return a.authDomain
}

type userDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
	now         func() time.Time
}

type authDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	redisServer redis.IRedis
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
	tokenTTL    time.Duration
	now         func() time.Time
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	redisServer redis.IRedis,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) AuthService {
	return &authService{
		userDomain: &userDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils, utils: utils, now: time.Now},
		authDomain: &authDomainImpl{log: log, repo: authRepo, redisServer: redisServer, bcryptUtils: bcryptUtils, utils: utils, tokenTTL: accessTokenTTL(), now: time.Now},
	}
}
