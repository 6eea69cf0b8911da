package ping

import (
	"log/slog"

	"sportify/internal/global/logger"
)

// Version 构建时可通过 -ldflags "-X sportify/internal/module/ping.Version=..." 覆盖
var Version = "1.0.0"

var log *slog.Logger

type ModulePing struct{}

func (p *ModulePing) GetName() string {
	return "Ping"
}

func (p *ModulePing) Init() {
	log = logger.New("Ping")
	log.Debug("服务版本", "version", Version)
}
