// Package cache provides a Redis client wrapper (Get/Set/Del with metrics)
// for an optional cross-process result cache. The engine facade does not
// use it; duplicate queries are short-circuited by internal/querycache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sonica-audio/engine/internal/logger"
	"github.com/sonica-audio/engine/internal/metrics"
	"go.uber.org/zap"
)

// RedisClient wraps redis.Client with centralized connection pooling and
// metrics instrumentation.
type RedisClient struct {
	client *redis.Client
}

var globalRedis *RedisClient

// NewRedisClient creates and initializes a Redis client with connection
// pooling. An empty host or port falls back to localhost or 6379.
func NewRedisClient(host, port, password string) (*RedisClient, error) {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 5,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.ErrorWithFields("Failed to connect to Redis", err)
		return nil, err
	}

	rc := &RedisClient{client: client}
	globalRedis = rc

	logger.Log.Info("Redis client connected successfully", zap.String("address", addr))
	return rc, nil
}

// GetRedisClient returns the global Redis client instance.
func GetRedisClient() *RedisClient {
	return globalRedis
}

// Close closes the Redis connection gracefully.
func (rc *RedisClient) Close() error {
	if rc == nil || rc.client == nil {
		return nil
	}
	return rc.client.Close()
}

// Get retrieves a serialized fingerprint or match result from Redis.
func (rc *RedisClient) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	result, err := rc.client.Get(ctx, key).Result()

	duration := time.Since(start).Seconds()
	metrics.Get().RedisOperationDuration.WithLabelValues("get").Observe(duration)

	status := "success"
	if err != nil {
		if err == redis.Nil {
			status = "miss"
		} else {
			status = "error"
		}
	}
	metrics.Get().RedisOperationsTotal.WithLabelValues("get", status).Inc()
	return result, err
}

// Set stores a value in Redis with the given time-to-live. A ttl of 0
// means no expiry.
func (rc *RedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	start := time.Now()
	err := rc.client.Set(ctx, key, value, ttl).Err()

	duration := time.Since(start).Seconds()
	metrics.Get().RedisOperationDuration.WithLabelValues("set").Observe(duration)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.Get().RedisOperationsTotal.WithLabelValues("set", status).Inc()
	return err
}

// Del removes one or more keys from Redis.
func (rc *RedisClient) Del(ctx context.Context, keys ...string) error {
	start := time.Now()
	err := rc.client.Del(ctx, keys...).Err()

	duration := time.Since(start).Seconds()
	metrics.Get().RedisOperationDuration.WithLabelValues("del").Observe(duration)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.Get().RedisOperationsTotal.WithLabelValues("del", status).Inc()
	return err
}
