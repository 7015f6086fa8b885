// Package ez 在 gin 上的一层轻封装：绑定入参、取调用者、统一错误映射。
package ez

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/policy"
	resp "printshop-api/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Group 子分组，可附带中间件（例如鉴权）
func (e EZ) Group(path string, h ...gin.HandlerFunc) EZ { return EZ{g: e.g.Group(path, h...)} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.PostForm 取
)

// Action 一个接口定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PATCH" | "DELETE"
	Path    string // 例："/auth/login"、"/orders/:id"
	Binder  Binder
	Auth    bool   // 要求已登录（由 Authenticate 中间件写入 actor）
	Status  int    // 成功状态码，默认 200
	Message string // 成功提示（可选）
	Handler func(c *gin.Context, a policy.Actor, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if a.Auth && !ok {
			Fail(c, apperr.Unauthorized("authentication required"))
			return
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			Fail(c, bindError(bindErr))
			return
		}

		out, err := a.Handler(c, actor, &in)
		if err != nil {
			Fail(c, err)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, resp.Msg(a.Message, out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// FormFile 读取 multipart 中的单个文件字段
func FormFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.BadRequest("request body too large")
		}
		return nil, apperr.BadRequest(field + " is required")
	}
	return fh, nil
}

func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.BadRequest("request body too large")
	}
	return apperr.BadRequest(err.Error())
}

// StatusOf 错误类别到 HTTP 状态码的唯一映射
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Fail 写错误响应；未识别的错误不向外暴露细节
func Fail(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := ""
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg = ae.Msg
	}
	c.AbortWithStatusJSON(status, resp.Error(status, msg))
}
