package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/config"

	"github.com/redis/go-redis/v9"
)

// Redis 在本服务中只作为可选的共享缓存层（用户存在性缓存等）。
// 未启用或连接失败时各调用方自行降级为进程内缓存。
var (
	redisOnce   sync.Once
	redisClient *redis.Client
)

// GetRedisClient 获取 Redis 客户端；未启用或不可用时返回 nil。
func GetRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.Get()
		if !cfg.Redis.Enabled {
			return
		}

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			log.Printf("⚠️ Redis 不可用，降级为内存模式: %v", err)
			return
		}

		redisClient = client
		log.Printf("✅ Redis 已连接: %s (db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	})
	return redisClient
}

// RedisKey 基于配置前缀拼接 Redis 键名。
func RedisKey(parts ...string) string {
	prefix := config.Get().Redis.Prefix
	if prefix == "" {
		prefix = "cloud_drive"
	}
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}

// CloseRedisClient 关闭 Redis 客户端连接。
func CloseRedisClient() error {
	if redisClient == nil {
		return nil
	}
	if err := redisClient.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
