package order

import (
	"github.com/gin-gonic/gin"
	"sportify/internal/global/middleware"
)

func (o *ModuleOrder) InitRouter(r *gin.RouterGroup) {
	orderGroup := r.Group("/orders", middleware.Auth())
	{
		orderGroup.POST("", CreateOrder)
		orderGroup.GET("/myorders", MyOrders)
		orderGroup.DELETE("/:id", CancelOrder)
		orderGroup.PATCH("/:id/status", UpdateOrderStatus)
	}

	adminGroup := orderGroup.Group("", middleware.Admin())
	{
		adminGroup.GET("", ListOrders)
		adminGroup.GET("/export", ExportOrders)
	}
}
