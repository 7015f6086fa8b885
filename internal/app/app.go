// Package app 按配置组装两个进程共用的依赖。
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"printshop-api/internal/core/auth"
	"printshop-api/internal/core/cache"
	"printshop-api/internal/core/config"
	"printshop-api/internal/core/database"
	"printshop-api/internal/core/events"
	"printshop-api/internal/core/payment"
	"printshop-api/internal/core/storage"
	"printshop-api/internal/domain"
	"printshop-api/internal/repo"
	"printshop-api/internal/service"
	mdw "printshop-api/internal/transport/http/middleware"
	"printshop-api/internal/transport/http/router"
)

type App struct {
	Cfg      *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Cache    *cache.Cache
	Events   events.Publisher
	Services *service.Services
}

// New 打开数据库、Redis、对象存储与事件通道；任何一步失败都返回错误
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	}, l)
	if err != nil {
		return nil, err
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db, domain.Models()...); err != nil {
			database.Close(db)
			return nil, err
		}
		l.Info("automigrate done")
	}

	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Ping(ctx); err != nil {
		// 不阻断启动：分类缓存直接回源；鉴权查注销列表失败返回 502
		l.Warn("redis unavailable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}

	objects, err := objectStore(ctx, cfg.Storage, l)
	if err != nil {
		database.Close(db)
		return nil, err
	}

	var pub events.Publisher = events.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		pub = events.NewKafka(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, l))
		l.Info("kafka publisher enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	var gw payment.Gateway
	if cfg.Payment.URL != "" {
		gw = payment.NewClient(payment.Options{
			URL:            cfg.Payment.URL,
			MerchantID:     cfg.Payment.MerchantID,
			MerchantSecret: cfg.Payment.MerchantSecret,
			APIKey:         cfg.Payment.APIKey,
			Timeout:        time.Duration(cfg.Payment.TimeoutSec) * time.Second,
		})
	}

	svc := service.New(service.Deps{
		Store:   repo.NewStore(db),
		Cache:   c,
		Objects: objects,
		Gateway: gw,
		Events:  pub,
		Tokens:  auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.AccessTokenTTLMin)*time.Minute),
		Revoker: auth.NewDenylist(c.RDB),
		Log:     l,
		Files: service.FileOptions{
			PresignTTL:     time.Duration(cfg.Files.PresignTTLMin) * time.Minute,
			Retention:      time.Duration(cfg.Files.RetentionHours) * time.Hour,
			SweepBatch:     cfg.Files.SweepBatch,
			MaxUploadBytes: int64(cfg.Files.MaxUploadMB) << 20,
		},
		Payments: service.PaymentOptions{
			CurrencyCode: cfg.Payment.CurrencyCode,
			Lang:         cfg.Payment.Lang,
			Channel:      cfg.Payment.Channel,
			PostBackURL:  cfg.Payment.PostBackURL,
		},
	})

	return &App{Cfg: cfg, Log: l, DB: db, Cache: c, Events: pub, Services: svc}, nil
}

func objectStore(ctx context.Context, s config.Storage, l *zap.Logger) (storage.ObjectStore, error) {
	if s.Bucket == "" {
		l.Warn("storage bucket not configured, using in-memory object store")
		return storage.NewMemory(), nil
	}
	return storage.NewS3(ctx, storage.S3Options{
		Bucket:          s.Bucket,
		Region:          s.Region,
		Endpoint:        s.Endpoint,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
		UsePathStyle:    s.UsePathStyle,
		Timeout:         time.Duration(s.TimeoutSec) * time.Second,
	})
}

// EngineOptions 从 app.http 推导路由层参数
func (a *App) EngineOptions() router.EngineOptions {
	h := a.Cfg.App.HTTP
	mode := "debug"
	if a.Cfg.App.Env == "prod" {
		mode = "release"
	}
	return router.EngineOptions{
		Name:           a.Cfg.App.Name,
		Mode:           mode,
		AllowOrigins:   h.AllowOrigins,
		RequestTimeout: time.Duration(h.RequestTimeoutSec) * time.Second,
		MaxBodyBytes:   int64(h.MaxBodyMB) << 20,
		MaxConcurrent:  int64(h.MaxConcurrent),
		RatePerSec:     h.RatePerSec,
		RateBurst:      h.RateBurst,
	}
}

// Authenticate 两个进程共用的鉴权中间件
func (a *App) Authenticate() gin.HandlerFunc {
	return mdw.Authenticate(a.Services.Auth, a.Cfg.JWT.CookieName)
}

// Close 关闭事件通道、Redis 与数据库
func (a *App) Close() {
	if err := a.Events.Close(); err != nil {
		a.Log.Warn("close publisher", zap.Error(err))
	}
	if err := a.Cache.RDB.Close(); err != nil && err != redis.ErrClosed {
		a.Log.Warn("close redis", zap.Error(err))
	}
	database.Close(a.DB)
}
