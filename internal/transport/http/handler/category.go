package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/internal/service"
	"printshop-api/internal/transport/http/ez"
)

type CategoryModule struct {
	svc   *service.CategoryService
	authn gin.HandlerFunc
}

func NewCategoryModule(svc *service.CategoryService, authn gin.HandlerFunc) *CategoryModule {
	return &CategoryModule{svc: svc, authn: authn}
}

func (m *CategoryModule) MountAPI(api *gin.RouterGroup) {
	g := ez.New(api.Group("/categories", m.authn))

	ez.RegisterAction(g, ez.Action[service.CategoryInput, *domain.ProductCategory]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, a policy.Actor, in *service.CategoryInput) (*domain.ProductCategory, error) {
			return m.svc.Create(c.Request.Context(), a, *in)
		},
	})
	ez.RegisterAction(g, ez.Action[service.PageQuery, service.Page[domain.ProductCategory]]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, q *service.PageQuery) (service.Page[domain.ProductCategory], error) {
			return m.svc.List(c.Request.Context(), a, *q)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, *domain.ProductCategory]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (*domain.ProductCategory, error) {
			return m.svc.Get(c.Request.Context(), a, c.Param("id"))
		},
	})
	ez.RegisterAction(g, ez.Action[service.CategoryInput, *domain.ProductCategory]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, in *service.CategoryInput) (*domain.ProductCategory, error) {
			return m.svc.Update(c.Request.Context(), a, c.Param("id"), *in)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Auth:    true,
		Message: "category deleted",
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (any, error) {
			return nil, m.svc.Delete(c.Request.Context(), a, c.Param("id"))
		},
	})
}
