package order

import (
	"log/slog"

	"sportify/internal/global/logger"
)

var log *slog.Logger

type ModuleOrder struct{}

func (o *ModuleOrder) GetName() string {
	return "Order"
}

func (o *ModuleOrder) Init() {
	log = logger.New("Order")
}

func selfInit() {
	o := &ModuleOrder{}
	o.Init()
}
