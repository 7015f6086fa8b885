package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/internal/service"
	"printshop-api/internal/transport/http/ez"
)

type FileModule struct {
	svc   *service.FileService
	authn gin.HandlerFunc
}

func NewFileModule(svc *service.FileService, authn gin.HandlerFunc) *FileModule {
	return &FileModule{svc: svc, authn: authn}
}

func (m *FileModule) MountAPI(api *gin.RouterGroup) {
	g := ez.New(api.Group("/files", m.authn))

	// multipart：file、productId、categoryId
	ez.RegisterAction(g, ez.Action[struct{}, *domain.File]{
		Method: http.MethodPost,
		Path:   "/upload",
		Binder: ez.BindNone,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (*domain.File, error) {
			up, closeFn, err := openUpload(c, "file")
			if err != nil {
				return nil, err
			}
			defer closeFn()
			return m.svc.Upload(c.Request.Context(), a, c.PostForm("productId"), c.PostForm("categoryId"), up)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, []service.FileView]{
		Method: http.MethodGet,
		Path:   "/product/:productId",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) ([]service.FileView, error) {
			return m.svc.ListByProduct(c.Request.Context(), a, c.Param("productId"))
		},
	})
	ez.RegisterAction(g, ez.Action[service.UpdateFileInput, *domain.File]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, in *service.UpdateFileInput) (*domain.File, error) {
			return m.svc.Update(c.Request.Context(), a, c.Param("id"), *in)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Auth:    true,
		Message: "file deleted",
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (any, error) {
			return nil, m.svc.Delete(c.Request.Context(), a, c.Param("id"))
		},
	})
}
