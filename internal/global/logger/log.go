package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	sentryslog "github.com/getsentry/sentry-go/slog"
	"gopkg.in/natefinch/lumberjack.v2"
	"sportify/config"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// fanout 把同一条记录分发给多个 handler
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}

// Get 全局 Logger，首次调用时按配置构建
func Get() *slog.Logger {
	once.Do(func() {
		cfg := config.Get()
		if cfg == nil {
			cfg = &config.Config{Mode: config.ModeDebug}
		}
		instance = slog.New(newHandler(cfg)).With(
			"app_name", "sportify",
			"env", string(cfg.Mode),
		)
	})
	return instance
}

func newHandler(cfg *config.Config) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Mode == config.ModeRelease,
		Level:     parseLevel(cfg.Log.Level),
	}

	var base slog.Handler
	if cfg.Mode == config.ModeRelease && cfg.Log.FilePath != "" {
		// release 写文件并轮转，同时保留标准输出方便容器采集
		var w io.Writer = &lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		}
		base = slog.NewJSONHandler(io.MultiWriter(w, os.Stdout), opts)
	} else {
		base = slog.NewTextHandler(os.Stdout, opts)
	}

	if cfg.Sentry.Dsn == "" {
		return base
	}
	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
		AddSource:  cfg.Mode == config.ModeRelease,
	}.NewSentryHandler(context.Background())
	return fanout{base, sentryHandler}
}

// New 带 module 字段的 Logger
func New(module string) *slog.Logger {
	return Get().With("module", module)
}

type requestInfo interface {
	ClientIP() string
	GetHeader(string) string
}

// WithContext 为业务日志附加客户端 IP 与请求 ID
func WithContext(base *slog.Logger, c requestInfo) *slog.Logger {
	l := base.With("client_ip", c.ClientIP())
	if id := c.GetHeader("X-Request-ID"); id != "" {
		l = l.With("request_id", id)
	}
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		l = l.With("x_forwarded_for", fwd)
	}
	return l
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
