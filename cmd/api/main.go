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

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"printshop-api/internal/app"
	"printshop-api/internal/core/config"
	"printshop-api/internal/core/logger"
	"printshop-api/internal/core/server"
	"printshop-api/internal/transport/http/handler"
	"printshop-api/internal/transport/http/router"
)

func main() {
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.FromConfig(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate(cfg.Log.Rotate))
	defer cleanup()
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undo()
	// gin 调试输出（路由表等）也进 zap
	gin.DefaultWriter = logger.ToWriter(log.Named("gin"), zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log.Named("gin"), zapcore.ErrorLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer a.Close()

	// 路由（用户端）
	reg := router.NewRegistry(handler.APIModules(a.Services, a.Authenticate(), handler.CookieOptions{
		Name:   cfg.JWT.CookieName,
		Secure: cfg.JWT.CookieSecure,
	})...)
	r := router.NewAPIEngine(log, a.EngineOptions(), reg)

	// 定时清理未购买的文件
	cronLog, _ := logger.ToStdLogger(log.Named("cron"), zapcore.InfoLevel)
	sched := cron.New(cron.WithLogger(cron.PrintfLogger(cronLog)))
	if _, err := sched.AddFunc(cfg.Files.SweepCron, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := a.Services.Sweeper.Sweep(jobCtx); err != nil {
			log.Error("file sweep failed", zap.Error(err))
		}
	}); err != nil {
		log.Fatal("invalid files.sweepCron", zap.String("spec", cfg.Files.SweepCron), zap.Error(err))
	}
	sched.Start()

	h := cfg.App.HTTP
	addr := server.Addr(h.Host, h.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)
	srv.ErrorLog, _ = logger.ToStdLogger(log.Named("http"), zapcore.WarnLevel)

	// 启动日志
	host4human := h.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(h.Port)
	log.Info("user api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
		zap.String("sweep_cron", cfg.Files.SweepCron),
	)

	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("user api start FAILED", zap.Error(err))
			stop()
		}
	}()

	// 优雅关闭
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	<-sched.Stop().Done()
	log.Info("user api stopped gracefully")
}
