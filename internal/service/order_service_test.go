package service

import (
	"github.com/shopspring/decimal"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/core/events"
	"printshop-api/internal/domain"
)

func (s *ServiceSuite) TestOrderAggregatesLineSubtotals() {
	c := s.category()
	p1 := s.product(s.alice, c.ID, 50, 2)
	p2 := s.product(s.alice, c.ID, 30, 1)
	f, err := s.svc.Files.Upload(s.ctx, s.alice, p1.ID, "", upload("artwork"))
	s.Require().NoError(err)

	o, err := s.svc.Orders.Create(s.ctx, s.alice, CreateOrderInput{
		Items:          []OrderItem{{ProductID: p1.ID}, {ProductID: p2.ID}},
		ShippingFee:    decimal.NewFromInt(15),
		ShippingMethod: "EMS",
	})
	s.Require().NoError(err)
	eqDec(s.T(), 130, o.OrderSubTotal)
	eqDec(s.T(), 145, o.Total())
	s.Equal(domain.OrderStatusPending, o.Status)
	s.Equal(s.alice.ID, o.UserID)

	got, err := s.svc.Orders.Get(s.ctx, s.alice, o.ID)
	s.Require().NoError(err)
	s.Len(got.Lines, 2)
	eqDec(s.T(), 130, got.OrderSubTotal)

	for _, id := range []string{p1.ID, p2.ID} {
		p, err := s.store.Products().FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.True(p.IsPurchased)
	}
	ff, err := s.store.Files().FindByID(s.ctx, f.ID)
	s.Require().NoError(err)
	s.True(ff.IsPurchased)

	s.Require().Len(s.events.events, 1)
	s.Equal(events.OrderCreated, s.events.events[0].Type)
	s.Equal(o.ID, s.events.events[0].Key)

	// 已购买的商品不可修改
	price := decimal.NewFromInt(1)
	_, err = s.svc.Products.Update(s.ctx, s.alice, p1.ID, UpdateProductInput{UnitPrice: &price})
	s.Equal(apperr.KindConflict, s.kind(err))
}

func (s *ServiceSuite) TestOrderRollsBackWhenProductMissing() {
	c := s.category()
	p1 := s.product(s.alice, c.ID, 10, 5)

	_, err := s.svc.Orders.Create(s.ctx, s.alice, CreateOrderInput{
		Items:          []OrderItem{{ProductID: p1.ID}, {ProductID: "missing-id"}},
		ShippingMethod: "EMS",
	})
	s.Equal(apperr.KindNotFound, s.kind(err))
	s.Contains(err.Error(), "missing-id")

	page, err := s.svc.Orders.List(s.ctx, s.admin, PageQuery{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Zero(page.Total)

	p, err := s.store.Products().FindByID(s.ctx, p1.ID)
	s.Require().NoError(err)
	s.False(p.IsPurchased)
	s.Empty(s.events.events)
}

func (s *ServiceSuite) TestOrderRejectsInvalidInput() {
	c := s.category()
	p1 := s.product(s.alice, c.ID, 10, 1)

	cases := []CreateOrderInput{
		{ShippingMethod: "EMS"},
		{Items: []OrderItem{{ProductID: p1.ID}, {ProductID: p1.ID}}, ShippingMethod: "EMS"},
		{Items: []OrderItem{{ProductID: p1.ID}}, ShippingMethod: "EMS", ShippingFee: decimal.NewFromInt(-1)},
		{Items: []OrderItem{{ProductID: p1.ID}}},
		{Items: []OrderItem{{ProductID: p1.ID}}, ShippingMethod: "EMS", ShippingFee: decimal.RequireFromString("4.995")},
		{Items: []OrderItem{{ProductID: p1.ID}}, ShippingMethod: "EMS", ShippingFee: decimal.New(1, 10)},
	}
	for _, in := range cases {
		_, err := s.svc.Orders.Create(s.ctx, s.alice, in)
		s.Equal(apperr.KindBadRequest, s.kind(err))
	}
}

func (s *ServiceSuite) TestOrderRejectsPurchasedAndForeignProducts() {
	c := s.category()
	p1 := s.product(s.alice, c.ID, 10, 1)
	in := CreateOrderInput{Items: []OrderItem{{ProductID: p1.ID}}, ShippingMethod: "EMS"}

	_, err := s.svc.Orders.Create(s.ctx, s.bob, in)
	s.Equal(apperr.KindForbidden, s.kind(err))

	_, err = s.svc.Orders.Create(s.ctx, s.alice, in)
	s.Require().NoError(err)

	_, err = s.svc.Orders.Create(s.ctx, s.alice, in)
	s.Equal(apperr.KindConflict, s.kind(err))
}

func (s *ServiceSuite) TestOrderAccessAndStatus() {
	c := s.category()
	p := s.product(s.alice, c.ID, 10, 1)
	o, err := s.svc.Orders.Create(s.ctx, s.alice, CreateOrderInput{Items: []OrderItem{{ProductID: p.ID}}, ShippingMethod: "EMS"})
	s.Require().NoError(err)

	_, err = s.svc.Orders.Get(s.ctx, s.bob, o.ID)
	s.Equal(apperr.KindForbidden, s.kind(err))
	_, err = s.svc.Orders.Get(s.ctx, s.bob, "nope")
	s.Equal(apperr.KindNotFound, s.kind(err))

	_, err = s.svc.Orders.UpdateStatus(s.ctx, s.alice, o.ID, domain.OrderStatusPaid)
	s.Equal(apperr.KindForbidden, s.kind(err))
	_, err = s.svc.Orders.UpdateStatus(s.ctx, s.admin, o.ID, "lost")
	s.Equal(apperr.KindBadRequest, s.kind(err))

	got, err := s.svc.Orders.UpdateStatus(s.ctx, s.admin, o.ID, domain.OrderStatusShipped)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusShipped, got.Status)
	got, err = s.svc.Orders.UpdateStatus(s.ctx, s.alice, o.ID, domain.OrderStatusCancelled)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusCancelled, got.Status)

	mine, err := s.svc.Orders.List(s.ctx, s.bob, PageQuery{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Zero(mine.Total)
	_, err = s.svc.Orders.ListByUser(s.ctx, s.bob, s.alice.ID, PageQuery{Page: 1, Limit: 10})
	s.Equal(apperr.KindForbidden, s.kind(err))

	s.Equal(apperr.KindForbidden, s.kind(s.svc.Orders.Delete(s.ctx, s.bob, o.ID)))
	s.Require().NoError(s.svc.Orders.Delete(s.ctx, s.alice, o.ID))
	_, err = s.svc.Orders.Get(s.ctx, s.alice, o.ID)
	s.Equal(apperr.KindNotFound, s.kind(err))
}
