package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "folio:prefs"

// RedisConfig selects the Redis instance backing preferences.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisBackend stores each client's preferences as a Redis hash.
type RedisBackend struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisBackend connects and pings Redis.
func NewRedisBackend(ctx context.Context, cfg RedisConfig, logger *zap.Logger) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return NewRedisBackendFromClient(client, logger), nil
}

// NewRedisBackendFromClient wraps an existing client.
func NewRedisBackendFromClient(client *redis.Client, logger *zap.Logger) *RedisBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBackend{client: client, logger: logger}
}

func (r *RedisBackend) Get(ctx context.Context, client, key string) (string, bool, error) {
	value, err := r.client.HGet(ctx, redisKey(client), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		r.logger.Debug("prefs get failed", zap.String("client", client), zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, client, key, value string) error {
	if err := r.client.HSet(ctx, redisKey(client), key, value).Err(); err != nil {
		r.logger.Debug("prefs set failed", zap.String("client", client), zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Close releases the connection pool.
func (r *RedisBackend) Close() error {
	return r.client.Close()
}

func redisKey(client string) string {
	return redisKeyPrefix + ":" + client
}
