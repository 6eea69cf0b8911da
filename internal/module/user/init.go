package user

import (
	"log/slog"

	"sportify/config"
	"sportify/internal/global/logger"
	"sportify/internal/global/redis"
)

var log *slog.Logger

type ModuleUser struct{}

func (u *ModuleUser) GetName() string {
	return "User"
}

func (u *ModuleUser) Init() {
	log = logger.New("User")
	cfg := config.Get()
	guard = newLoginGuard(redis.Client, cfg.Auth.MaxLoginAttempts, cfg.Auth.LockoutSeconds)
	if err := SeedAdmin(cfg.Admin); err != nil {
		log.Error("初始化管理员账号失败", "error", err)
	}
}

func selfInit() {
	u := &ModuleUser{}
	u.Init()
}
