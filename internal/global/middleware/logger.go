package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sentrylib "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"sportify/internal/global/jwt"
	"sportify/internal/global/response"
)

// Logger 记录访问日志，不记录请求与响应体
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
			"request_id", GetRequestID(c),
		}
		if payload, ok := jwt.GetUserPayload(c); ok {
			attrs = append(attrs, "user_id", payload.UserID)
		}
		if v, ok := c.Get(response.ErrorContextKey); ok {
			if e, ok := v.(*response.Error); ok {
				attrs = append(attrs, "reason", e.Reason)
			}
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("HTTP Request", attrs...)
		case status >= http.StatusBadRequest:
			log.Warn("HTTP Request", attrs...)
		default:
			log.Info("HTTP Request", attrs...)
		}
	}
}

// SentryEnrich 放在 sentry 中间件之后，为事件附加 IP 与请求 ID，已登录时附加用户
func SentryEnrich() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.ConfigureScope(func(scope *sentrylib.Scope) {
				user := sentrylib.User{IPAddress: c.ClientIP()}
				if payload, ok := jwt.GetUserPayload(c); ok {
					user.ID = strconv.FormatUint(uint64(payload.UserID), 10)
					user.Username = payload.Username
				}
				scope.SetUser(user)
				scope.SetTag("request_id", GetRequestID(c))
			})
		}
		c.Next()
	}
}
