package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"kisanagro-backend/config"
)

// Client holds the redis connection used for session inquiry carts
var Client *redis.Client

// InitRedis initializes the redis client and verifies connectivity
func InitRedis(cfg *config.Config) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Printf("✓ Redis connection established successfully")
	return nil
}

// CloseRedis closes the redis connection
func CloseRedis() error {
	if Client != nil {
		return Client.Close()
	}
	return nil
}
