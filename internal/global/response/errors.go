package response

import "net/http"

var (
	ErrInvalidRequest = newError(http.StatusBadRequest, "INVALID_REQUEST", "请求参数错误")
	ErrCapacityFull   = newError(http.StatusBadRequest, "CAPACITY_FULL", "活动人数已满")
	ErrAlreadyExists  = newError(http.StatusBadRequest, "ALREADY_EXISTS", "记录已存在")

	ErrTokenMissing    = newError(http.StatusUnauthorized, "TOKEN_MISSING", "未提供认证令牌")
	ErrTokenInvalid    = newError(http.StatusUnauthorized, "TOKEN_INVALID", "认证令牌无效")
	ErrTokenExpired    = newError(http.StatusUnauthorized, "TOKEN_EXPIRED", "认证令牌已过期")
	ErrUnauthorized    = newError(http.StatusUnauthorized, "UNAUTHORIZED", "请先登录")
	ErrBadCredentials  = newError(http.StatusUnauthorized, "BAD_CREDENTIALS", "用户名或密码错误")
	ErrForbidden       = newError(http.StatusForbidden, "FORBIDDEN", "权限不足")
	ErrNotFound        = newError(http.StatusNotFound, "NOT_FOUND", "资源不存在")
	ErrTooManyRequests = newError(http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "尝试次数过多，请稍后再试")

	ErrDatabase           = newError(http.StatusInternalServerError, "DATABASE_ERROR", "数据库错误")
	ErrServerInternal     = newError(http.StatusInternalServerError, "INTERNAL_ERROR", "服务器内部错误")
	ErrStorageUnavailable = newError(http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "文件存储不可用")
)
