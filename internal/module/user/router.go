package user

import (
	"github.com/gin-gonic/gin"
	"sportify/internal/global/middleware"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	authGroup.POST("/register", Register)
	authGroup.POST("/login", Login)

	meGroup := r.Group("/users/me", middleware.Auth())
	meGroup.GET("", Me)
	meGroup.PATCH("", UpdateContact)
	meGroup.PUT("/password", ChangePassword)
}
