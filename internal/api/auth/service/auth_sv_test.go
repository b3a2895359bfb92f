package authService

import (
	"FinTrack/internal/api/auth"
	authRepository "FinTrack/internal/api/auth/repository"
	"FinTrack/internal/entity"
	"FinTrack/pkg/bcrypt"
	jwtPkg "FinTrack/pkg/jwt"
	"FinTrack/pkg/utils"
	"context"
	"errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"io"
	"sync"
	"testing"
	"time"
)

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]entity.User
}

func (f *fakeUsers) CreateUser(ctx context.Context, user entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return auth.ErrEmailAlreadyExists
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

type fakeRepository struct {
	users *fakeUsers
}

func (f *fakeRepository) NewClient(tx bool) (authRepository.Client, error) {
	noop := func() error { return nil }
	return authRepository.Client{Users: f.users, Commit: noop, Rollback: noop}, nil
}

type fakeRedis struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (f *fakeRedis) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[tokenID] = ttl
	return nil
}

func (f *fakeRedis) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[tokenID]
	return ok, nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) { return "", errors.New("miss") }
func (f *fakeRedis) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	return nil
}
func (f *fakeRedis) Incr(ctx context.Context, key string) (int64, error)    { return 1, nil }
func (f *fakeRedis) Version(ctx context.Context, key string) (int64, error) { return 0, nil }

func newTestService(t *testing.T) (AuthService, *fakeRedis) {
	t.Helper()
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	redisServer := &fakeRedis{revoked: map[string]time.Duration{}}
	repo := &fakeRepository{users: &fakeUsers{byEmail: map[string]entity.User{}}}

	return New(logger, repo, redisServer, bcrypt.NewWithCost(4), utils.New()), redisServer
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.User().RegisterUser(ctx, auth.CreateUserRequest{
		Name:     "Maria Rossi",
		Email:    "  Maria@Example.com ",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}
	if user.Email != "maria@example.com" {
		t.Errorf("Email = %s, want normalized", user.Email)
	}

	res, err := svc.Auth().Login(ctx, auth.LoginUserRequest{Email: "MARIA@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.ExpiresInMinutes <= 0 {
		t.Errorf("ExpiresInMinutes = %v", res.ExpiresInMinutes)
	}

	token, err := jwtPkg.Parse(res.AccessToken, jwtPkg.AccessTokenSecret)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	loginData, err := jwtPkg.ClaimsToUser(token.Claims.(jwt.MapClaims))
	if err != nil {
		t.Fatalf("ClaimsToUser() error = %v", err)
	}
	if loginData.ID != user.ID || loginData.TokenID == "" {
		t.Errorf("claims = %+v", loginData)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	req := auth.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "password1"}

	if _, err := svc.User().RegisterUser(ctx, req); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.User().RegisterUser(ctx, req); !errors.Is(err, auth.ErrEmailAlreadyExists) {
		t.Errorf("err = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.User().RegisterUser(ctx, auth.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "password1"}); err != nil {
		t.Fatal(err)
	}

	tests := []auth.LoginUserRequest{
		{Email: "ana@example.com", Password: "password2"},
		{Email: "nobody@example.com", Password: "password1"},
	}
	for _, req := range tests {
		if _, err := svc.Auth().Login(ctx, req); !errors.Is(err, auth.ErrInvalidEmailOrPassword) {
			t.Errorf("Login(%s) err = %v, want ErrInvalidEmailOrPassword", req.Email, err)
		}
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, redisServer := newTestService(t)

	user := entity.UserLoginData{ID: "u1", TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}
	if err := svc.Auth().Logout(context.Background(), user); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	ttl, ok := redisServer.revoked["jti-1"]
	if !ok {
		t.Fatal("token not revoked")
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("ttl = %v", ttl)
	}

	if err := svc.Auth().Logout(context.Background(), entity.UserLoginData{ID: "u1"}); !errors.Is(err, auth.ErrorInvalidToken) {
		t.Errorf("err = %v, want ErrorInvalidToken", err)
	}
}
