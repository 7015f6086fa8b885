package service

import (
	"github.com/shopspring/decimal"

	"printshop-api/internal/core/apperr"
)

func (s *ServiceSuite) TestProductLifecycle() {
	c := s.category()
	p := s.product(s.alice, c.ID, 100, 2)
	eqDec(s.T(), 200, p.SubTotal)
	s.Equal(s.alice.ID, p.UserID)

	three := 3
	_, err := s.svc.Products.Update(s.ctx, s.bob, p.ID, UpdateProductInput{Amount: &three})
	s.Equal(apperr.KindForbidden, s.kind(err))

	got, err := s.svc.Products.Update(s.ctx, s.admin, p.ID, UpdateProductInput{Amount: &three})
	s.Require().NoError(err)
	eqDec(s.T(), 300, got.SubTotal)

	_, err = s.svc.Orders.Create(s.ctx, s.alice, CreateOrderInput{Items: []OrderItem{{ProductID: p.ID}}, ShippingMethod: "EMS"})
	s.Require().NoError(err)

	s.Equal(apperr.KindConflict, s.kind(s.svc.Products.Delete(s.ctx, s.alice, p.ID)))
}

func (s *ServiceSuite) TestProductValidation() {
	c := s.category()
	in := CreateProductInput{CategoryID: c.ID, UnitPrice: decimal.NewFromInt(-1), Amount: 1}
	_, err := s.svc.Products.Create(s.ctx, s.alice, in)
	s.Equal(apperr.KindBadRequest, s.kind(err))

	in.UnitPrice = decimal.NewFromInt(1)
	in.CategoryID = "missing"
	_, err = s.svc.Products.Create(s.ctx, s.alice, in)
	s.Equal(apperr.KindNotFound, s.kind(err))

	p := s.product(s.alice, c.ID, 10, 1)
	zero := 0
	_, err = s.svc.Products.Update(s.ctx, s.alice, p.ID, UpdateProductInput{Amount: &zero})
	s.Equal(apperr.KindBadRequest, s.kind(err))
	_, err = s.svc.Products.Get(s.ctx, s.bob, "missing")
	s.Equal(apperr.KindNotFound, s.kind(err))
}

func (s *ServiceSuite) TestProductPriceFitsColumns() {
	c := s.category()
	in := CreateProductInput{CategoryID: c.ID, UnitPrice: decimal.RequireFromString("10.005"), Amount: 3}
	_, err := s.svc.Products.Create(s.ctx, s.alice, in)
	s.Equal(apperr.KindBadRequest, s.kind(err))

	in.UnitPrice = decimal.New(1, 10)
	_, err = s.svc.Products.Create(s.ctx, s.alice, in)
	s.Equal(apperr.KindBadRequest, s.kind(err))

	// 单价合法但小计超出 decimal(14,2)
	in.UnitPrice = decimal.RequireFromString("9999999999.99")
	in.Amount = 1000
	_, err = s.svc.Products.Create(s.ctx, s.alice, in)
	s.Equal(apperr.KindBadRequest, s.kind(err))

	in.UnitPrice = decimal.RequireFromString("10.010")
	in.Amount = 3
	p, err := s.svc.Products.Create(s.ctx, s.alice, in)
	s.Require().NoError(err)
	s.Equal("10.01", p.UnitPrice.String())
	s.Equal("30.03", p.SubTotal.String())

	bad := decimal.RequireFromString("0.125")
	_, err = s.svc.Products.Update(s.ctx, s.alice, p.ID, UpdateProductInput{UnitPrice: &bad})
	s.Equal(apperr.KindBadRequest, s.kind(err))
}

func (s *ServiceSuite) TestProductPagination() {
	c := s.category()
	for i := 0; i < 15; i++ {
		s.product(s.alice, c.ID, 10, 1)
	}
	s.product(s.bob, c.ID, 10, 1)

	page, err := s.svc.Products.List(s.ctx, s.alice, PageQuery{Page: 2, Limit: 10})
	s.Require().NoError(err)
	s.Len(page.Items, 5)
	s.EqualValues(15, page.Total)
	s.Equal(2, page.TotalPages)

	all, err := s.svc.Products.List(s.ctx, s.admin, PageQuery{Page: 1, Limit: 100})
	s.Require().NoError(err)
	s.EqualValues(16, all.Total)

	byCat, err := s.svc.Products.ListByCategory(s.ctx, s.bob, c.ID, PageQuery{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.EqualValues(1, byCat.Total)

	_, err = s.svc.Products.ListByCategory(s.ctx, s.bob, "missing", PageQuery{Page: 1, Limit: 10})
	s.Equal(apperr.KindNotFound, s.kind(err))
	_, err = s.svc.Products.ListByUser(s.ctx, s.bob, s.alice.ID, PageQuery{Page: 1, Limit: 10})
	s.Equal(apperr.KindForbidden, s.kind(err))

	for _, q := range []PageQuery{{Page: 0, Limit: 10}, {Page: 1, Limit: 0}, {Page: 1, Limit: 101}} {
		_, err := s.svc.Products.List(s.ctx, s.alice, q)
		s.Equal(apperr.KindBadRequest, s.kind(err))
	}
}

func (s *ServiceSuite) TestCreateWithFile() {
	c := s.category()
	in := CreateProductInput{CategoryID: c.ID, Size: "A4", UnitPrice: decimal.NewFromInt(5), Amount: 10}

	out, err := s.svc.Products.CreateWithFile(s.ctx, s.alice, in, upload("%PDF-1.7"))
	s.Require().NoError(err)
	eqDec(s.T(), 50, out.Product.SubTotal)
	s.Equal(out.Product.ID, out.File.ProductID)
	s.Equal(s.alice.ID, out.File.UserID)
	s.Equal(1, s.objects.Len())

	_, err = s.svc.Products.CreateWithFile(s.ctx, s.alice, in, Upload{Name: "empty.pdf"})
	s.Equal(apperr.KindBadRequest, s.kind(err))
}

func (s *ServiceSuite) TestCreateWithFileRollsBack() {
	c := s.category()
	svc := New(Deps{Store: faultStore{s.store}, Objects: s.objects})

	in := CreateProductInput{CategoryID: c.ID, UnitPrice: decimal.NewFromInt(5), Amount: 1}
	_, err := svc.Products.CreateWithFile(s.ctx, s.alice, in, upload("%PDF-1.7"))
	s.Error(err)

	page, err := s.svc.Products.List(s.ctx, s.admin, PageQuery{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Zero(page.Total)
	s.Zero(s.objects.Len())
}

func (s *ServiceSuite) TestCreateWithFileStorageFailure() {
	c := s.category()
	s.objects.failPut = true
	in := CreateProductInput{CategoryID: c.ID, UnitPrice: decimal.NewFromInt(5), Amount: 1}

	_, err := s.svc.Products.CreateWithFile(s.ctx, s.alice, in, upload("x"))
	s.Equal(apperr.KindUpstream, s.kind(err))
	page, err := s.svc.Products.List(s.ctx, s.admin, PageQuery{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Zero(page.Total)
}
