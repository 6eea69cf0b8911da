package response

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ErrorContextKey gin.Context 中存放本次请求错误的键
const ErrorContextKey = "error"

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Error 业务错误，Code 即 HTTP 状态码，Reason 是稳定的机器可读标识
type Error struct {
	Code    int32  `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"msg"`
	Origin  string `json:"origin,omitempty"`
	cause   error
	stack   pkgerrors.StackTrace
}

func newError(code int32, reason, msg string) *Error {
	return &Error{Code: code, Reason: reason, Message: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d, reason:%s, msg:%s", e.Code, e.Reason, e.Message)
}

// GetCode 供 sentry 判断是否需要上报
func (e *Error) GetCode() int32 {
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if st, ok := e.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Is 以 Reason 判等，WithOrigin/WithTips 派生出的错误仍与原错误相等
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Reason == t.Reason
}

// WithOrigin 附带原始错误，debug 模式下会返回给前端
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}
	if _, ok := err.(stackTracer); !ok {
		err = pkgerrors.WithStack(err)
	}
	n := *e
	n.Origin = fmt.Sprintf("%+v", err)
	n.cause = err
	n.stack = err.(stackTracer).StackTrace()
	return &n
}

// WithTips 替换面向用户的提示信息，release 模式也可见
func (e *Error) WithTips(details ...string) *Error {
	if len(details) == 0 {
		return e
	}
	n := *e
	n.Message = strings.Join(details, "；")
	return &n
}
