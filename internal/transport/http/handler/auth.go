package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/internal/service"
	"printshop-api/internal/transport/http/ez"
	mdw "printshop-api/internal/transport/http/middleware"
)

// CookieOptions 登录后下发的 access token cookie
type CookieOptions struct {
	Name   string
	Secure bool
}

type AuthModule struct {
	svc    *service.AuthService
	authn  gin.HandlerFunc
	cookie CookieOptions
}

func NewAuthModule(svc *service.AuthService, authn gin.HandlerFunc, cookie CookieOptions) *AuthModule {
	if cookie.Name == "" {
		cookie.Name = "access_token"
	}
	return &AuthModule{svc: svc, authn: authn, cookie: cookie}
}

func (m *AuthModule) Priority() int { return 10 }

func (m *AuthModule) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookie.Name, value, maxAge, "/", "", m.cookie.Secure, true)
}

func (m *AuthModule) MountAPI(api *gin.RouterGroup) {
	// 登录注册按 IP 限速，防撞库
	g := ez.New(api.Group("/auth", mdw.RateLimitPerIP(10, 20)))

	ez.RegisterAction(g, ez.Action[service.RegisterInput, *domain.User]{
		Method:  http.MethodPost,
		Path:    "/register",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Message: "registered",
		Handler: func(c *gin.Context, _ policy.Actor, in *service.RegisterInput) (*domain.User, error) {
			return m.svc.Register(c.Request.Context(), *in)
		},
	})

	ez.RegisterAction(g, ez.Action[service.LoginInput, *service.LoginResult]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, _ policy.Actor, in *service.LoginInput) (*service.LoginResult, error) {
			res, err := m.svc.Login(c.Request.Context(), *in)
			if err != nil {
				return nil, err
			}
			m.setCookie(c, res.Token, int(time.Until(res.ExpiresAt).Seconds()))
			return res, nil
		},
	})

	authed := g.Group("", m.authn)
	ez.RegisterAction(authed, ez.Action[struct{}, any]{
		Method:  http.MethodPost,
		Path:    "/logout",
		Binder:  ez.BindNone,
		Auth:    true,
		Message: "logged out",
		Handler: func(c *gin.Context, a policy.Actor, _ *struct{}) (any, error) {
			if err := m.svc.Logout(c.Request.Context(), a, ez.ClaimsFrom(c)); err != nil {
				return nil, err
			}
			m.setCookie(c, "", -1)
			return nil, nil
		},
	})
}
