package user

import (
	"context"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var guard *loginGuard

// loginGuard 按登录标识统计连续失败次数，client 为 nil 时不做限制
type loginGuard struct {
	client      *goredis.Client
	maxAttempts int
	window      time.Duration
}

func newLoginGuard(client *goredis.Client, maxAttempts int, lockoutSeconds int64) *loginGuard {
	return &loginGuard{
		client:      client,
		maxAttempts: maxAttempts,
		window:      time.Duration(lockoutSeconds) * time.Second,
	}
}

func (g *loginGuard) active() bool {
	return g != nil && g.client != nil && g.maxAttempts > 0
}

func (g *loginGuard) key(identifier string) string {
	return "sportify:login:fail:" + strings.ToLower(identifier)
}

// Locked Redis 出错时放行
func (g *loginGuard) Locked(ctx context.Context, identifier string) bool {
	if !g.active() {
		return false
	}
	n, err := g.client.Get(ctx, g.key(identifier)).Int()
	if err != nil {
		if err != goredis.Nil {
			log.Warn("读取登录失败次数出错", "error", err)
		}
		return false
	}
	return n >= g.maxAttempts
}

func (g *loginGuard) Fail(ctx context.Context, identifier string) {
	if !g.active() {
		return
	}
	key := g.key(identifier)
	_, err := g.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, g.window)
		return nil
	})
	if err != nil {
		log.Warn("记录登录失败次数出错", "error", err)
	}
}

func (g *loginGuard) Reset(ctx context.Context, identifier string) {
	if !g.active() {
		return
	}
	if err := g.client.Del(ctx, g.key(identifier)).Err(); err != nil {
		log.Warn("清除登录失败次数出错", "error", err)
	}
}
