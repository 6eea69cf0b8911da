package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"sportify/config"
	"sportify/internal/global/database"
	"sportify/internal/global/logger"
	"sportify/internal/global/middleware"
	"sportify/internal/global/redis"
	"sportify/internal/global/sentry"
	"sportify/internal/module"
	"sportify/tools"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	if err := sentry.Init(); err != nil {
		log.Error("Sentry 初始化失败", "error", err)
	}
	if config.Get().UsingDevSecret() {
		log.Warn("未配置 JWT 密钥，正在使用开发密钥，请勿用于生产环境")
	}

	database.Init()
	redis.Init()

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	cfg := config.Get()
	gin.SetMode(string(cfg.Mode))
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(sentry.Middleware(), middleware.SentryEnrich())
	switch cfg.Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Metrics())
	r.Use(middleware.Cors(cfg.Cors.AllowOrigins))
	r.Use(middleware.Recovery())

	if cfg.Storage.Home != "" && cfg.Storage.BaseURL != "" {
		r.Static(cfg.Storage.BaseURL, cfg.Storage.Home)
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + cfg.Prefix))
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("服务启动", "addr", srv.Addr, "mode", cfg.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			tools.PanicOnErr(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("正在关闭服务")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务关闭超时", "error", err)
	}
	redis.Close()
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	sentry.Flush(2 * time.Second)
	log.Info("服务已退出")
}
