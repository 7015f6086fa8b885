package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewAdminEngine 管理端：/admin/v1 整组走 guard（鉴权 + 角色）
func NewAdminEngine(l *zap.Logger, o EngineOptions, reg *Registry, guard ...gin.HandlerFunc) *gin.Engine {
	r := newEngine(l, o)
	admin := r.Group("/admin/v1")
	admin.Use(guard...)
	reg.MountAdmin(admin)
	return r
}
