package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"printshop-api/internal/app"
	"printshop-api/internal/core/config"
	"printshop-api/internal/core/logger"
	"printshop-api/internal/core/server"
	"printshop-api/internal/policy"
	"printshop-api/internal/transport/http/handler"
	mdw "printshop-api/internal/transport/http/middleware"
	"printshop-api/internal/transport/http/router"
)

func main() {
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.FromConfig(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate(cfg.Log.Rotate))
	defer cleanup()
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undo()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer a.Close()

	// 初始管理员
	if ad := cfg.App.Admin; ad.BootstrapEmail != "" {
		if _, err := a.Services.Users.EnsureAdmin(ctx, ad.BootstrapEmail, ad.BootstrapPassword); err != nil {
			log.Fatal("bootstrap admin failed", zap.Error(err))
		}
		log.Info("bootstrap admin ready", zap.String("email", ad.BootstrapEmail))
	}

	// 路由（后台端）：登录且角色为 ADMIN
	reg := router.NewRegistry(handler.NewAdminModule(a.Services))
	r := router.NewAdminEngine(log, a.EngineOptions(), reg, a.Authenticate(), mdw.RequireRole(policy.RoleAdmin))

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	// 失败立即退出
	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("admin api start FAILED", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	log.Info("admin api stopped gracefully")
}
