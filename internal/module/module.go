package module

import (
	"github.com/gin-gonic/gin"
	"sportify/internal/module/activity"
	"sportify/internal/module/comment"
	"sportify/internal/module/order"
	"sportify/internal/module/ping"
	"sportify/internal/module/stats"
	"sportify/internal/module/user"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&user.ModuleUser{},
		&ping.ModulePing{},
		&activity.ModuleActivity{},
		&order.ModuleOrder{},
		&comment.ModuleComment{},
		&stats.ModuleStats{},
	})
}
