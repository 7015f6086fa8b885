package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type orderLog struct{ names []string }

type mod struct {
	name string
	prio int
	log  *orderLog
}

func (m mod) Priority() int { return m.prio }
func (m mod) MountAPI(g *gin.RouterGroup) {
	m.log.names = append(m.log.names, m.name)
	g.GET("/"+m.name, func(c *gin.Context) { c.String(http.StatusOK, m.name) })
}

type adminOnly struct{}

func (adminOnly) MountAdmin(g *gin.RouterGroup) {
	g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func TestRegistryOrdersByPriority(t *testing.T) {
	log := &orderLog{}
	reg := NewRegistry(mod{"b", 100, log}, mod{"a", 10, log}, mod{"c", 100, log}, adminOnly{})

	r := NewAPIEngine(zap.NewNop(), EngineOptions{}, reg)
	assert.Equal(t, []string{"a", "b", "c"}, log.names)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/a", nil))
	assert.Equal(t, "a", w.Body.String())

	admin := NewAdminEngine(zap.NewNop(), EngineOptions{}, reg)
	w = httptest.NewRecorder()
	admin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/v1/ping", nil))
	assert.Equal(t, "pong", w.Body.String())
}

func TestRegisterRejectsUnknownModule(t *testing.T) {
	assert.Panics(t, func() { NewRegistry(struct{}{}) })
}
