package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/core/auth"
	"printshop-api/internal/policy"
	"printshop-api/internal/transport/http/ez"
)

// Authenticator 由 service.AuthService 实现
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (policy.Actor, *auth.Claims, error)
}

// BearerOrCookie Authorization: Bearer 优先，其次 cookie
func BearerOrCookie(c *gin.Context, cookieName string) string {
	if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(ah, "Bearer "))
	}
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil {
			return v
		}
	}
	return ""
}

// Authenticate 解析 token 并把 actor/claims 写入上下文
func Authenticate(a Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, claims, err := a.Authenticate(c.Request.Context(), BearerOrCookie(c, cookieName))
		if err != nil {
			ez.Fail(c, err)
			return
		}
		ez.SetActor(c, actor, claims)
		c.Next()
	}
}

// RequireRole 必须在 Authenticate 之后
func RequireRole(role policy.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ez.ActorFrom(c)
		if !ok {
			ez.Fail(c, apperr.Unauthorized("authentication required"))
			return
		}
		if actor.Role != role {
			ez.Fail(c, apperr.Forbidden("not authorized"))
			return
		}
		c.Next()
	}
}
