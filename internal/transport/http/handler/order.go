package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/internal/service"
	"printshop-api/internal/transport/http/ez"
)

type OrderModule struct {
	svc   *service.OrderService
	authn gin.HandlerFunc
}

func NewOrderModule(svc *service.OrderService, authn gin.HandlerFunc) *OrderModule {
	return &OrderModule{svc: svc, authn: authn}
}

func (m *OrderModule) MountAPI(api *gin.RouterGroup) {
	g := ez.New(api.Group("/orders", m.authn))
	type page = service.Page[domain.Order]

	ez.RegisterAction(g, ez.Action[service.CreateOrderInput, *domain.Order]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, a policy.Actor, in *service.CreateOrderInput) (*domain.Order, error) {
			return m.svc.Create(c.Request.Context(), a, *in)
		},
	})
	ez.RegisterAction(g, ez.Action[service.PageQuery, page]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, q *service.PageQuery) (page, error) {
			return m.svc.List(c.Request.Context(), a, *q)
		},
	})
	ez.RegisterAction(g, ez.Action[service.PageQuery, page]{
		Method: http.MethodGet,
		Path:   "/user/:userId",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, q *service.PageQuery) (page, error) {
			return m.svc.ListByUser(c.Request.Context(), a, c.Param("userId"), *q)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, *domain.Order]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (*domain.Order, error) {
			return m.svc.Get(c.Request.Context(), a, c.Param("id"))
		},
	})
	ez.RegisterAction(g, ez.Action[service.UpdateOrderStatusInput, *domain.Order]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, in *service.UpdateOrderStatusInput) (*domain.Order, error) {
			return m.svc.UpdateStatus(c.Request.Context(), a, c.Param("id"), in.Status)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Auth:    true,
		Message: "order deleted",
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (any, error) {
			return nil, m.svc.Delete(c.Request.Context(), a, c.Param("id"))
		},
	})
}
