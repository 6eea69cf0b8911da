package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"sportify/internal/global/jwt"
	"sportify/internal/global/response"
)

// Auth 校验 Bearer 令牌，成功后把 *jwt.Claims 写入上下文
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, response.ErrTokenMissing)
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Fail(c, response.ErrTokenInvalid)
			return
		}

		payload, err := jwt.ParseToken(strings.TrimSpace(token))
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			response.Fail(c, response.ErrTokenExpired)
			return
		case err != nil:
			response.Fail(c, response.ErrTokenInvalid)
			return
		}
		c.Set(jwt.PayloadKey, payload)
		c.Next()
	}
}

// Admin 必须挂在 Auth 之后
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := jwt.GetUserPayload(c)
		if !ok {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		if !payload.IsAdmin() {
			response.Fail(c, response.ErrForbidden.WithTips("需要管理员权限"))
			return
		}
		c.Next()
	}
}
