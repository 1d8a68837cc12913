package broker

import (
	"context"
	"fmt"
	"time"

	"runboard/internal/platform/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectRedis returns nil when REDIS_ADDR is unset; callers fall back to
// single-instance fanout.
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	logrus.WithField("addr", cfg.RedisAddr).Info("Successfully connected to Redis!")
	return rdb, nil
}

func CloseRedis(rdb *redis.Client) {
	if rdb != nil {
		rdb.Close()
		logrus.Info("Redis connection closed.")
	}
}
