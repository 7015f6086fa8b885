package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/internal/service"
	"printshop-api/internal/transport/http/ez"
)

type ProductModule struct {
	svc   *service.ProductService
	authn gin.HandlerFunc
}

func NewProductModule(svc *service.ProductService, authn gin.HandlerFunc) *ProductModule {
	return &ProductModule{svc: svc, authn: authn}
}

func (m *ProductModule) MountAPI(api *gin.RouterGroup) {
	g := ez.New(api.Group("/products", m.authn))
	type page = service.Page[domain.Product]

	ez.RegisterAction(g, ez.Action[service.CreateProductInput, *domain.Product]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, a policy.Actor, in *service.CreateProductInput) (*domain.Product, error) {
			return m.svc.Create(c.Request.Context(), a, *in)
		},
	})

	// multipart：file 为设计稿，product 为 JSON 编码的商品字段
	ez.RegisterAction(g, ez.Action[struct{}, *service.ProductWithFile]{
		Method: http.MethodPost,
		Path:   "/with-file",
		Binder: ez.BindNone,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (*service.ProductWithFile, error) {
			var in service.CreateProductInput
			if err := formJSON(c, "product", &in); err != nil {
				return nil, err
			}
			up, closeFn, err := openUpload(c, "file")
			if err != nil {
				return nil, err
			}
			defer closeFn()
			return m.svc.CreateWithFile(c.Request.Context(), a, in, up)
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
		Path:   "/category/:categoryId",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, q *service.PageQuery) (page, error) {
			return m.svc.ListByCategory(c.Request.Context(), a, c.Param("categoryId"), *q)
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
	ez.RegisterAction(g, ez.Action[struct{}, *domain.Product]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (*domain.Product, error) {
			return m.svc.Get(c.Request.Context(), a, c.Param("id"))
		},
	})
	ez.RegisterAction(g, ez.Action[service.UpdateProductInput, *domain.Product]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, in *service.UpdateProductInput) (*domain.Product, error) {
			return m.svc.Update(c.Request.Context(), a, c.Param("id"), *in)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Auth:    true,
		Message: "product deleted",
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (any, error) {
			return nil, m.svc.Delete(c.Request.Context(), a, c.Param("id"))
		},
	})
}
