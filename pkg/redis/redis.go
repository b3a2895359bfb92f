package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

const revokedTokenPrefix = "revoked_token:"

type IRedis interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	Version(ctx context.Context, key string) (int64, error)
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client) IRedis {
	return &redisClient{client: client}
}

// RevokeToken blocks tokenID until ttl elapses, which should match the token's
// remaining lifetime.
func (r *redisClient) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error revoking token %s: %v", tokenID, err))
		return err
	}
	logrus.Debug(fmt.Sprintf("Revoked token %s for %v", tokenID, ttl))
	return nil
}

func (r *redisClient) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error checking token %s: %v", tokenID, err))
		return false, err
	}
	return n > 0, nil
}

func (r *redisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logrus.Debug(fmt.Sprintf("Key %s not found", key))
		return "", ErrCacheMiss
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting key %s: %v", key, err))
		return "", err
	}
	return val, nil
}

func (r *redisClient) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error setting key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) Incr(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error incrementing key %s: %v", key, err))
		return 0, err
	}
	return n, nil
}

// Version reads a counter maintained with Incr. A missing counter is version 0.
func (r *redisClient) Version(ctx context.Context, key string) (int64, error) {
	val, err := r.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
