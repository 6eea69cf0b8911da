package redis

import (
	"context"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"sportify/config"
	"sportify/internal/global/logger"
	"sportify/internal/global/sentry/tracing"
)

// Client 未配置 Redis 时为 nil，调用方需自行判断
var Client *redis.Client

func Init() {
	cfg := config.Get().Redis
	if cfg.Host == "" {
		logger.New("Redis").Info("未配置 Redis，登录限流关闭")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	client.AddHook(tracing.NewRedisHook())

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.New("Redis").Warn("Redis 连接失败，登录限流关闭", "addr", client.Options().Addr, "error", err)
		_ = client.Close()
		return
	}
	Client = client
}

func Close() {
	if Client != nil {
		_ = Client.Close()
	}
}
