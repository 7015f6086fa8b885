package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/internal/service"
	"printshop-api/internal/transport/http/ez"
)

// UserModule /users 与 /users/:id/address
type UserModule struct {
	users     *service.UserService
	addresses *service.AddressService
	authn     gin.HandlerFunc
}

func NewUserModule(users *service.UserService, addresses *service.AddressService, authn gin.HandlerFunc) *UserModule {
	return &UserModule{users: users, addresses: addresses, authn: authn}
}

func (m *UserModule) MountAPI(api *gin.RouterGroup) {
	g := ez.New(api.Group("/users", m.authn))

	ez.RegisterAction(g, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (*domain.User, error) {
			return m.users.Me(c.Request.Context(), a)
		},
	})
	ez.RegisterAction(g, ez.Action[service.PageQuery, service.Page[domain.User]]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, q *service.PageQuery) (service.Page[domain.User], error) {
			return m.users.List(c.Request.Context(), a, *q)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (*domain.User, error) {
			return m.users.Get(c.Request.Context(), a, c.Param("id"))
		},
	})
	ez.RegisterAction(g, ez.Action[service.UpdateUserInput, *domain.User]{
		Method: http.MethodPatch,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, in *service.UpdateUserInput) (*domain.User, error) {
			return m.users.Update(c.Request.Context(), a, c.Param("id"), *in)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  ez.BindNone,
		Auth:    true,
		Message: "user deleted",
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (any, error) {
			return nil, m.users.Delete(c.Request.Context(), a, c.Param("id"))
		},
	})

	// /users/me/address 与 /users/:id/address 共用一组处理
	self := func(c *gin.Context, a policy.Actor) string { return a.ID }
	byID := func(c *gin.Context, _ policy.Actor) string { return c.Param("id") }
	m.mountAddress(g, "/me/address", self)
	m.mountCreateAddress(g)
	m.mountAddress(g, "/:id/address", byID)
}

func (m *UserModule) mountAddress(g ez.EZ, path string, owner func(*gin.Context, policy.Actor) string) {
	ez.RegisterAction(g, ez.Action[struct{}, *domain.Address]{
		Method: http.MethodGet,
		Path:   path,
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (*domain.Address, error) {
			return m.addresses.Get(c.Request.Context(), a, owner(c, a))
		},
	})
	ez.RegisterAction(g, ez.Action[service.UpdateAddressInput, *domain.Address]{
		Method: http.MethodPatch,
		Path:   path,
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, a policy.Actor, in *service.UpdateAddressInput) (*domain.Address, error) {
			return m.addresses.Update(c.Request.Context(), a, owner(c, a), *in)
		},
	})
	ez.RegisterAction(g, ez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    path,
		Binder:  ez.BindNone,
		Auth:    true,
		Message: "address deleted",
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (any, error) {
			return nil, m.addresses.Delete(c.Request.Context(), a, owner(c, a))
		},
	})
}

// mountCreateAddress 只能为自己创建地址
func (m *UserModule) mountCreateAddress(g ez.EZ) {
	ez.RegisterAction(g, ez.Action[service.CreateAddressInput, *domain.Address]{
		Method: http.MethodPost,
		Path:   "/me/address",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, a policy.Actor, in *service.CreateAddressInput) (*domain.Address, error) {
			return m.addresses.Create(c.Request.Context(), a, *in)
		},
	})
}
