package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/internal/service"
	"printshop-api/internal/transport/http/ez"
)

type CartModule struct {
	svc   *service.CartService
	authn gin.HandlerFunc
}

func NewCartModule(svc *service.CartService, authn gin.HandlerFunc) *CartModule {
	return &CartModule{svc: svc, authn: authn}
}

func (m *CartModule) MountAPI(api *gin.RouterGroup) {
	g := ez.New(api.Group("/carts", m.authn))

	ez.RegisterAction(g, ez.Action[service.AddCartInput, *domain.Cart]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, a policy.Actor, in *service.AddCartInput) (*domain.Cart, error) {
			return m.svc.Add(c.Request.Context(), a, *in)
		},
	})
	ez.RegisterAction(g, ez.Action[service.PageQuery, service.Page[domain.Cart]]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, q *service.PageQuery) (service.Page[domain.Cart], error) {
			return m.svc.List(c.Request.Context(), a, *q)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, *domain.Cart]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (*domain.Cart, error) {
			return m.svc.Get(c.Request.Context(), a, c.Param("id"))
		},
	})
	ez.RegisterAction(g, ez.Action[service.UpdateCartInput, *domain.Cart]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, in *service.UpdateCartInput) (*domain.Cart, error) {
			return m.svc.Update(c.Request.Context(), a, c.Param("id"), *in)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Auth:    true,
		Message: "cart item deleted",
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (any, error) {
			return nil, m.svc.Delete(c.Request.Context(), a, c.Param("id"))
		},
	})
}
