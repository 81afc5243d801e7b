package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// Cache is the subset of RedisService the domain services depend on.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type RedisService struct {
	appContext.DefaultService
	redis *redis.Client
}

const REDIS_SVC = "redis_svc"

var errRedisNotInitialized = fmt.Errorf("redis client not initialized")

func (svc RedisService) Id() string {
	return REDIS_SVC
}

func (svc *RedisService) Configure(ctx *appContext.Context) error {
	svc.initRedisClient()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RedisService) Start() error {
	if svc.redis != nil {
		ctx := context.Background()
		_, err := svc.redis.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
	}
	return nil
}

func (svc *RedisService) Shutdown() {
	if svc.redis != nil {
		svc.redis.Close()
	}
}

func (svc *RedisService) initRedisClient() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	svc.redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
}

func (svc *RedisService) GetClient() *redis.Client {
	return svc.redis
}

func (svc *RedisService) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if svc.redis == nil {
		return errRedisNotInitialized
	}

	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return svc.redis.Set(ctx, key, data, expiration).Err()
}

// GetJSON decodes key into dest and reports whether the key existed.
func (svc *RedisService) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if svc.redis == nil {
		return false, errRedisNotInitialized
	}

	result, err := svc.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := sonic.Unmarshal(result, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (svc *RedisService) Delete(ctx context.Context, keys ...string) error {
	if svc.redis == nil {
		return errRedisNotInitialized
	}

	return svc.redis.Del(ctx, keys...).Err()
}

// IncrementWindow bumps a fixed-window counter, setting the window expiry
// on the first hit. It returns the new count and the time left in the window.
func (svc *RedisService) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if svc.redis == nil {
		return 0, 0, errRedisNotInitialized
	}

	pipe := svc.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	left := ttl.Val()
	if left < 0 {
		left = window
	}
	return incr.Val(), left, nil
}

// SetFlag stores a marker key that expires after ttl.
func (svc *RedisService) SetFlag(ctx context.Context, key string, ttl time.Duration) error {
	if svc.redis == nil {
		return errRedisNotInitialized
	}

	return svc.redis.Set(ctx, key, "1", ttl).Err()
}

// FlagTTL returns the remaining lifetime of a marker key, or 0 when absent.
func (svc *RedisService) FlagTTL(ctx context.Context, key string) (time.Duration, error) {
	if svc.redis == nil {
		return 0, errRedisNotInitialized
	}

	ttl, err := svc.redis.PTTL(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
