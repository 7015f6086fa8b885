package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/internal/service"
	"printshop-api/internal/transport/http/ez"
)

// AdminModule 管理端接口；分组已由 guard 校验 ADMIN
type AdminModule struct {
	users   *service.UserService
	orders  *service.OrderService
	sweeper *service.Sweeper
}

func NewAdminModule(svc *service.Services) *AdminModule {
	return &AdminModule{users: svc.Users, orders: svc.Orders, sweeper: svc.Sweeper}
}

func (m *AdminModule) MountAdmin(admin *gin.RouterGroup) {
	g := ez.New(admin)

	ez.RegisterAction(g, ez.Action[service.PageQuery, service.Page[domain.User]]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, q *service.PageQuery) (service.Page[domain.User], error) {
			return m.users.List(c.Request.Context(), a, *q)
		},
	})

	type banIn struct {
		Banned *bool `json:"banned"` // 缺省为封禁
	}
	ez.RegisterAction(g, ez.Action[banIn, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, in *banIn) (*domain.User, error) {
			banned := true
			if c.Request.ContentLength > 0 {
				if err := c.ShouldBindJSON(in); err != nil {
					return nil, apperr.BadRequest(err.Error())
				}
				if in.Banned != nil {
					banned = *in.Banned
				}
			}
			return m.users.SetBanned(c.Request.Context(), a, c.Param("id"), banned)
		},
	})

	ez.RegisterAction(g, ez.Action[service.PageQuery, service.Page[domain.Order]]{
		Method: http.MethodGet,
		Path:   "/orders",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, q *service.PageQuery) (service.Page[domain.Order], error) {
			return m.orders.List(c.Request.Context(), a, *q)
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, service.SweepReport]{
		Method: http.MethodPost,
		Path:   "/files/sweep",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ policy.Actor, _ *struct{}) (service.SweepReport, error) {
			return m.sweeper.Sweep(c.Request.Context())
		},
	})
}
