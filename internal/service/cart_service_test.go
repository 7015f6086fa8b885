package service

import (
	"github.com/shopspring/decimal"

	"printshop-api/internal/core/apperr"
)

func (s *ServiceSuite) TestCartLifecycle() {
	c := s.category()
	p := s.product(s.alice, c.ID, 12, 1)

	item, err := s.svc.Carts.Add(s.ctx, s.alice, AddCartInput{ProductID: p.ID, Amount: 3})
	s.Require().NoError(err)
	eqDec(s.T(), 36, item.SubTotal)

	_, err = s.svc.Carts.Add(s.ctx, s.bob, AddCartInput{ProductID: p.ID, Amount: 1})
	s.Equal(apperr.KindForbidden, s.kind(err))
	_, err = s.svc.Carts.Add(s.ctx, s.alice, AddCartInput{ProductID: p.ID, Amount: 0})
	s.Equal(apperr.KindBadRequest, s.kind(err))

	price := decimal.NewFromInt(20)
	_, err = s.svc.Products.Update(s.ctx, s.alice, p.ID, UpdateProductInput{UnitPrice: &price})
	s.Require().NoError(err)

	got, err := s.svc.Carts.Update(s.ctx, s.alice, item.ID, UpdateCartInput{Amount: 2})
	s.Require().NoError(err)
	eqDec(s.T(), 40, got.SubTotal)

	_, err = s.svc.Carts.Get(s.ctx, s.bob, item.ID)
	s.Equal(apperr.KindForbidden, s.kind(err))

	page, err := s.svc.Carts.List(s.ctx, s.alice, PageQuery{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Require().NotNil(page.Items[0].Product)
	s.Equal(p.ID, page.Items[0].Product.ID)

	s.Require().NoError(s.svc.Carts.Delete(s.ctx, s.alice, item.ID))
	_, err = s.svc.Carts.Get(s.ctx, s.alice, item.ID)
	s.Equal(apperr.KindNotFound, s.kind(err))
}

func (s *ServiceSuite) TestCartRejectsOversizedSubTotal() {
	c := s.category()
	p, err := s.svc.Products.Create(s.ctx, s.alice, CreateProductInput{
		CategoryID: c.ID, UnitPrice: decimal.RequireFromString("9999999999.99"), Amount: 1,
	})
	s.Require().NoError(err)

	_, err = s.svc.Carts.Add(s.ctx, s.alice, AddCartInput{ProductID: p.ID, Amount: 1000})
	s.Equal(apperr.KindBadRequest, s.kind(err))

	item, err := s.svc.Carts.Add(s.ctx, s.alice, AddCartInput{ProductID: p.ID, Amount: 1})
	s.Require().NoError(err)
	_, err = s.svc.Carts.Update(s.ctx, s.alice, item.ID, UpdateCartInput{Amount: 1000})
	s.Equal(apperr.KindBadRequest, s.kind(err))
}
