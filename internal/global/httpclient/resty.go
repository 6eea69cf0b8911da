package httpclient

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// New 带超时与重试的出站 HTTP 客户端
func New(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("User-Agent", "sportify-healthcheck")
}
