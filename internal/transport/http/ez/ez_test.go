package ez

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/policy"
	resp "printshop-api/internal/transport/http/response"
)

func TestStatusOf(t *testing.T) {
	cases := map[int]error{
		http.StatusNotFound:            apperr.NotFound("x"),
		http.StatusForbidden:           apperr.Forbidden("x"),
		http.StatusUnauthorized:        apperr.Unauthorized("x"),
		http.StatusBadRequest:          apperr.BadRequest("x"),
		http.StatusConflict:            apperr.Conflict("x"),
		http.StatusBadGateway:          apperr.Upstream("x", errors.New("y")),
		http.StatusInternalServerError: errors.New("plain"),
	}
	for want, err := range cases {
		assert.Equal(t, want, StatusOf(err), err.Error())
	}
}

type echoIn struct {
	Name string `json:"name" binding:"required"`
}

func newEngine(withActor bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("")
	if withActor {
		g.Use(func(c *gin.Context) { SetActor(c, policy.Actor{ID: "u1", Role: policy.RoleUser}, nil) })
	}
	e := New(g)
	RegisterAction(e, Action[echoIn, string]{
		Method:  http.MethodPost,
		Path:    "/echo",
		Binder:  BindJSON,
		Auth:    true,
		Status:  http.StatusCreated,
		Message: "created",
		Handler: func(_ *gin.Context, a policy.Actor, in *echoIn) (string, error) {
			if in.Name == "boom" {
				return "", errors.New("db exploded")
			}
			return a.ID + ":" + in.Name, nil
		},
	})
	return r
}

func call(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, resp.Resp) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out resp.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

func TestRegisterAction(t *testing.T) {
	w, out := call(t, newEngine(false), `{"name":"a"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, out.Success)

	r := newEngine(true)
	w, out = call(t, r, `{"name":"a"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, out.Success)
	assert.Equal(t, "created", out.Message)
	assert.Equal(t, "u1:a", out.Data)

	w, _ = call(t, r, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 未识别错误不泄露细节
	w, out = call(t, r, `{"name":"boom"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, out.Message, "exploded")
}
