// Package tracing 为 GORM 与 Redis 挂载 Sentry span
package tracing

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"sportify/config"
)

func tracingConfig() config.SentryTracing {
	if cfg := config.Get(); cfg != nil {
		return cfg.Sentry.Tracing
	}
	return config.SentryTracing{}
}

// startChild 没有父 span 时返回 nil
func startChild(ctx context.Context, op, desc string) *sentry.Span {
	if ctx == nil {
		return nil
	}
	parent := sentry.SpanFromContext(ctx)
	if parent == nil {
		return nil
	}
	span := parent.StartChild(op)
	span.Description = desc
	return span
}

// finish 低于阈值的 span 不发送，threshold 为 0 时全部发送
func finish(span *sentry.Span, elapsed, threshold time.Duration, err error) {
	if span == nil {
		return
	}
	if threshold > 0 && elapsed < threshold {
		span.Sampled = sentry.SampledFalse
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
