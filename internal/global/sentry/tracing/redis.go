package tracing

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisHook 为 Redis 命令与 pipeline 生成 span
type RedisHook struct {
	slowThreshold time.Duration
}

func NewRedisHook() *RedisHook {
	return &RedisHook{
		slowThreshold: time.Duration(tracingConfig().RedisSlowThresholdMs) * time.Millisecond,
	}
}

func (h *RedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *RedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		span := startChild(ctx, "db.redis", strings.ToUpper(cmd.Name()))
		if span != nil {
			span.SetData("db.system", "redis")
			ctx = span.Context()
		}
		err := next(ctx, cmd)
		if errors.Is(err, redis.Nil) {
			finish(span, time.Since(start), h.slowThreshold, nil)
		} else {
			finish(span, time.Since(start), h.slowThreshold, err)
		}
		return err
	}
}

func (h *RedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		names := make([]string, 0, len(cmds))
		for _, cmd := range cmds {
			names = append(names, strings.ToUpper(cmd.Name()))
		}
		span := startChild(ctx, "db.redis.pipeline", "PIPELINE: "+strings.Join(names, ", "))
		if span != nil {
			span.SetData("db.system", "redis")
			span.SetData("redis.pipeline_length", len(cmds))
			ctx = span.Context()
		}
		err := next(ctx, cmds)
		finish(span, time.Since(start), h.slowThreshold, err)
		return err
	}
}
