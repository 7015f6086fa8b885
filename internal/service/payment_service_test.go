package service

import (
	"errors"

	"github.com/shopspring/decimal"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/core/events"
	"printshop-api/internal/domain"
)

func (s *ServiceSuite) order(price int64, amount int, fee int64) *domain.Order {
	c := s.category()
	p := s.product(s.alice, c.ID, price, amount)
	o, err := s.svc.Orders.Create(s.ctx, s.alice, CreateOrderInput{
		Items:          []OrderItem{{ProductID: p.ID}},
		ShippingFee:    decimal.NewFromInt(fee),
		ShippingMethod: "EMS",
	})
	s.Require().NoError(err)
	return o
}

func (s *ServiceSuite) TestPaymentCreateOncePerOrder() {
	o := s.order(25, 4, 50)
	in := CreatePaymentInput{OrderID: o.ID, ProductDetail: "boxes", CustomerEmail: "alice@example.com"}

	res, err := s.svc.Payments.Create(s.ctx, s.alice, in)
	s.Require().NoError(err)
	s.Equal(1, s.gateway.calls)
	eqDec(s.T(), 150, s.gateway.last.Total)
	s.Equal("THB", s.gateway.last.CurrencyCode)
	s.Len(s.gateway.last.RefNo, 16)
	s.Equal("PENDING", res.Status)
	s.Contains(res.RedirectURL, s.gateway.last.RefNo)

	got, err := s.svc.Orders.Get(s.ctx, s.alice, o.ID)
	s.Require().NoError(err)
	s.Equal(res.PaymentID, got.PaymentID)
	s.Equal(domain.OrderStatusAwaitingPayment, got.Status)

	_, err = s.svc.Payments.Create(s.ctx, s.alice, in)
	s.Equal(apperr.KindConflict, s.kind(err))
	s.Equal(1, s.gateway.calls)
	s.Equal(events.PaymentCreated, s.events.events[len(s.events.events)-1].Type)
}

func (s *ServiceSuite) TestPaymentAccessChecks() {
	o := s.order(10, 1, 0)

	_, err := s.svc.Payments.Create(s.ctx, s.bob, CreatePaymentInput{OrderID: o.ID})
	s.Equal(apperr.KindForbidden, s.kind(err))
	_, err = s.svc.Payments.Create(s.ctx, s.alice, CreatePaymentInput{OrderID: "missing"})
	s.Equal(apperr.KindNotFound, s.kind(err))
	s.Zero(s.gateway.calls)
}

func (s *ServiceSuite) TestPaymentGatewayFailureIsUpstream() {
	o := s.order(10, 1, 0)
	s.gateway.err = errors.New("connection reset")

	_, err := s.svc.Payments.Create(s.ctx, s.alice, CreatePaymentInput{OrderID: o.ID})
	s.Equal(apperr.KindUpstream, s.kind(err))

	p, err := s.store.Payments().FindByOrderID(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Nil(p)

	// 网关恢复后可以重试
	s.gateway.err = nil
	_, err = s.svc.Payments.Create(s.ctx, s.alice, CreatePaymentInput{OrderID: o.ID})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestPaymentRequiresPendingOrder() {
	o := s.order(10, 1, 0)
	_, err := s.svc.Orders.UpdateStatus(s.ctx, s.alice, o.ID, domain.OrderStatusCancelled)
	s.Require().NoError(err)

	_, err = s.svc.Payments.Create(s.ctx, s.alice, CreatePaymentInput{OrderID: o.ID, ProductDetail: "boxes", CustomerEmail: "alice@example.com"})
	s.Equal(apperr.KindConflict, s.kind(err))
	s.Zero(s.gateway.calls)
}
