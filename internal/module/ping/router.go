package ping

import (
	"github.com/gin-gonic/gin"
	"sportify/internal/global/metrics"
	"sportify/internal/global/response"
)

func (p *ModulePing) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"version": Version,
		})
	})
	r.GET("/metrics", metrics.Handler())
}
