package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop-api/internal/policy"
	"printshop-api/internal/service"
	"printshop-api/internal/transport/http/ez"
)

type PaymentModule struct {
	svc   *service.PaymentService
	authn gin.HandlerFunc
}

func NewPaymentModule(svc *service.PaymentService, authn gin.HandlerFunc) *PaymentModule {
	return &PaymentModule{svc: svc, authn: authn}
}

func (m *PaymentModule) MountAPI(api *gin.RouterGroup) {
	g := ez.New(api.Group("/payment", m.authn))

	ez.RegisterAction(g, ez.Action[service.CreatePaymentInput, *service.PaymentResult]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, a policy.Actor, in *service.CreatePaymentInput) (*service.PaymentResult, error) {
			return m.svc.Create(c.Request.Context(), a, *in)
		},
	})
}
