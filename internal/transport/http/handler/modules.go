package handler

import (
	"github.com/gin-gonic/gin"

	"printshop-api/internal/service"
)

// APIModules 用户端全部模块，交给 router.Registry
func APIModules(s *service.Services, authn gin.HandlerFunc, cookie CookieOptions) []any {
	return []any{
		NewAuthModule(s.Auth, authn, cookie),
		NewUserModule(s.Users, s.Addresses, authn),
		NewCategoryModule(s.Categories, authn),
		NewProductModule(s.Products, authn),
		NewFileModule(s.Files, authn),
		NewCartModule(s.Carts, authn),
		NewOrderModule(s.Orders, authn),
		NewPaymentModule(s.Payments, authn),
	}
}
