package activity

import (
	"github.com/gin-gonic/gin"
	"sportify/internal/global/middleware"
)

func (p *ModuleActivity) InitRouter(r *gin.RouterGroup) {
	activityGroup := r.Group("/activities")
	activityGroup.GET("", ListActivities)
	activityGroup.GET("/:id", GetActivity)

	adminGroup := activityGroup.Group("", middleware.Auth(), middleware.Admin())
	{
		adminGroup.POST("", CreateActivity)
		adminGroup.PUT("/:id", UpdateActivity)
		adminGroup.PATCH("/:id/close", CloseActivity)
		adminGroup.POST("/cover/presign", PresignCover)
		adminGroup.POST("/:id/cover", UploadCover)
	}
}
