package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"printshop-api/internal/core/server"
	mdw "printshop-api/internal/transport/http/middleware"
	resp "printshop-api/internal/transport/http/response"
)

type EngineOptions struct {
	Name           string
	Mode           string
	AllowOrigins   []string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	MaxConcurrent  int64
	RatePerSec     float64
	RateBurst      int
}

func (o EngineOptions) withDefaults() EngineOptions {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 16 << 20
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = 300
	}
	if o.RatePerSec <= 0 {
		o.RatePerSec = 200
	}
	if o.RateBurst <= 0 {
		o.RateBurst = 400
	}
	return o
}

// newEngine 两个入口共用的中间件、健康检查与指标
func newEngine(l *zap.Logger, o EngineOptions) *gin.Engine {
	o = o.withDefaults()
	r := server.NewRouter(l, server.Options{Name: o.Name, Mode: o.Mode, AllowOrigins: o.AllowOrigins})

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(o.RatePerSec), o.RateBurst),
		mdw.ConcurrencyLimit(o.MaxConcurrent, 2*time.Second),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.RequestTimeout),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(gin.H{"ok": 1})) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(http.StatusNotFound, "route not found"))
	})
	return r
}

// NewAPIEngine 用户端：/api/v1，模块自行决定哪些路由需要鉴权
func NewAPIEngine(l *zap.Logger, o EngineOptions, reg *Registry) *gin.Engine {
	r := newEngine(l, o)
	reg.MountAPI(r.Group("/api/v1"))
	return r
}
