package sentry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"sportify/config"
)

// CodedError 带状态码的错误，只有 5xx 才上报
type CodedError interface {
	error
	GetCode() int32
}

func enabled() bool {
	cfg := config.Get()
	return cfg != nil && cfg.Sentry.Dsn != ""
}

// Init 未配置 DSN 时什么也不做
func Init() error {
	if !enabled() {
		return nil
	}
	cfg := config.Get()

	rate := cfg.Sentry.SampleRate
	if rate <= 0 {
		rate = 1.0
	}
	env := cfg.Sentry.Environment
	if env == "" {
		env = string(cfg.Mode)
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.Dsn,
		Environment:      env,
		Release:          "sportify@1.0.0",
		SampleRate:       1.0,
		EnableTracing:    true,
		TracesSampleRate: rate,
		EnableLogs:       true,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			// 请求体里可能有密码
			if event.Request != nil {
				event.Request.Data = ""
			}
			return event
		},
	})
	if err != nil {
		return fmt.Errorf("sentry 初始化失败: %w", err)
	}
	return nil
}

func Middleware() gin.HandlerFunc {
	if !enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	return sentrygin.New(sentrygin.Options{
		Repanic: true, // 交给 Recovery 中间件返回 500
		Timeout: 2 * time.Second,
	})
}

// CaptureException 上报服务端错误，业务错误忽略
func CaptureException(c *gin.Context, err error) {
	if !enabled() || !shouldReport(err) {
		return
	}
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(c.Request)
		scope.SetTag("path", c.FullPath())
		scope.SetTag("method", c.Request.Method)
		if payload, ok := c.Get("payload"); ok {
			scope.SetUser(sentry.User{Data: map[string]string{"payload": fmt.Sprintf("%+v", payload)}})
		}
		hub.CaptureException(err)
	})
}

func shouldReport(err error) bool {
	if e, ok := err.(CodedError); ok {
		return e.GetCode() >= 500
	}
	return true
}

// Flush 退出前调用，等待事件发送完成
func Flush(timeout time.Duration) {
	if enabled() {
		sentry.Flush(timeout)
	}
}
