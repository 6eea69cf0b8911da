package stats

import (
	"github.com/gin-gonic/gin"
	"sportify/internal/global/middleware"
)

func (*ModuleStats) InitRouter(r *gin.RouterGroup) {
	adminGroup := r.Group("/stats", middleware.Auth(), middleware.Admin())
	{
		activityAdmin := adminGroup.Group("/activities")
		{
			activityAdmin.GET("/rank", Rank)
			activityAdmin.GET("/:id/brief", Brief)
		}
	}
}
