package comment

import (
	"github.com/gin-gonic/gin"
	"sportify/internal/global/middleware"
)

func (m *ModuleComment) InitRouter(r *gin.RouterGroup) {
	commentGroup := r.Group("/comments")
	commentGroup.GET("/activity/:id", ListComments)

	authGroup := commentGroup.Group("", middleware.Auth())
	{
		authGroup.POST("", CreateComment)
		authGroup.DELETE("/:id", DeleteComment)
	}
}
