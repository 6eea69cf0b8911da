package response

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"sportify/config"
	"sportify/internal/global/logger"
	"sportify/internal/global/sentry"
)

// ResponseBody 统一响应信封
type ResponseBody struct {
	Code   int32  `json:"code"`
	Reason string `json:"reason,omitempty"`
	Msg    string `json:"msg"`
	Origin string `json:"origin,omitempty"`
	Data   any    `json:"data,omitempty"`
}

func Success(c *gin.Context, data ...any) {
	write(c, http.StatusOK, data...)
}

// Created 新建资源成功，返回 201
func Created(c *gin.Context, data ...any) {
	write(c, http.StatusCreated, data...)
}

func write(c *gin.Context, code int, data ...any) {
	body := ResponseBody{Code: int32(code), Msg: "success"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.JSON(code, body)
}

// Fail 以错误码作为 HTTP 状态返回，非 *Error 的错误一律视为内部错误
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}
	c.Set(ErrorContextKey, e)
	if e.Code >= http.StatusInternalServerError {
		sentry.CaptureException(c, e)
	}

	body := ResponseBody{Code: e.Code, Reason: e.Reason, Msg: e.Message}
	if cfg := config.Get(); cfg != nil && cfg.Mode == config.ModeDebug {
		body.Origin = e.Origin
	}
	c.AbortWithStatusJSON(int(e.Code), body)
}

// Recovery 需要以 defer 调用，将 panic 转为 500 响应
func Recovery(c *gin.Context) {
	r := recover()
	if r == nil {
		return
	}
	logger.New("Recovery").Error("请求处理发生 panic",
		"panic", r,
		"path", c.Request.URL.Path,
		"stack", string(debug.Stack()),
	)
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	if !c.Writer.Written() {
		Fail(c, ErrServerInternal.WithOrigin(err))
	}
}
