package ez

import (
	"github.com/gin-gonic/gin"

	"printshop-api/internal/core/auth"
	"printshop-api/internal/policy"
)

const (
	keyActor  = "actor"
	keyClaims = "claims"
)

func SetActor(c *gin.Context, a policy.Actor, claims *auth.Claims) {
	c.Set(keyActor, a)
	c.Set(keyClaims, claims)
}

func ActorFrom(c *gin.Context) (policy.Actor, bool) {
	v, ok := c.Get(keyActor)
	if !ok {
		return policy.Actor{}, false
	}
	a, ok := v.(policy.Actor)
	return a, ok
}

func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, _ := c.Get(keyClaims)
	claims, _ := v.(*auth.Claims)
	return claims
}
