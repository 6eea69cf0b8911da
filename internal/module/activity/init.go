package activity

import (
	"log/slog"
	"path/filepath"
	"strings"

	"sportify/config"
	"sportify/internal/global/logger"
	"sportify/internal/global/pictureBed"
)

var (
	log *slog.Logger
	pb  *pictureBed.PictureBed
)

type ModuleActivity struct{}

func (p *ModuleActivity) GetName() string {
	return "Activity"
}

func (p *ModuleActivity) Init() {
	log = logger.New("Activity")
	cfg := config.Get()
	pb = pictureBed.NewPictureBed(config.Storage{
		Home:    filepath.Join(cfg.Storage.Home, "covers"),
		BaseURL: strings.TrimRight(cfg.Storage.BaseURL, "/") + "/covers",
	}, cfg.S3)
}

func selfInit() {
	p := &ModuleActivity{}
	p.Init()
}
