package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var reg = prometheus.WrapRegistererWith(prometheus.Labels{"service": "sportify"}, prometheus.DefaultRegisterer)

var (
	// RequestDuration 请求耗时
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal 请求总数
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// OrderTotal 下单结果，result 取 created 或拒绝原因
	OrderTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_create_total",
			Help: "Total number of order create attempts by result",
		},
		[]string{"result"},
	)

	// SeatsReleased 取消订单释放的名额
	SeatsReleased = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_seats_released_total",
			Help: "Total number of activity seats released by cancellations",
		},
	)

	// LoginTotal 登录结果
	LoginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_login_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)
)

func init() {
	reg.MustRegister(RequestDuration)
	reg.MustRegister(RequestTotal)
	reg.MustRegister(OrderTotal)
	reg.MustRegister(SeatsReleased)
	reg.MustRegister(LoginTotal)
}

// Handler 暴露 /metrics
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
