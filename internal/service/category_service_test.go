package service

import "printshop-api/internal/core/apperr"

func (s *ServiceSuite) TestCategoryAdminOnly() {
	_, err := s.svc.Categories.Create(s.ctx, s.alice, CategoryInput{Name: "Labels"})
	s.Equal(apperr.KindForbidden, s.kind(err))
	_, err = s.svc.Categories.Create(s.ctx, s.admin, CategoryInput{Name: "  "})
	s.Equal(apperr.KindBadRequest, s.kind(err))

	c := s.category()
	_, err = s.svc.Categories.Update(s.ctx, s.alice, c.ID, CategoryInput{Name: "x"})
	s.Equal(apperr.KindForbidden, s.kind(err))
	_, err = s.svc.Categories.Update(s.ctx, s.admin, "missing", CategoryInput{Name: "x"})
	s.Equal(apperr.KindNotFound, s.kind(err))
	s.Equal(apperr.KindForbidden, s.kind(s.svc.Categories.Delete(s.ctx, s.alice, c.ID)))
}

func (s *ServiceSuite) TestCategoryCacheInvalidation() {
	c := s.category()

	got, err := s.svc.Categories.Get(s.ctx, s.alice, c.ID)
	s.Require().NoError(err)
	s.Equal("Boxes", got.Name)
	s.True(s.mr.Exists("category:id:" + c.ID))

	page, err := s.svc.Categories.List(s.ctx, s.alice, PageQuery{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.EqualValues(1, page.Total)
	s.True(s.mr.Exists("category:list:1:10"))

	_, err = s.svc.Categories.Update(s.ctx, s.admin, c.ID, CategoryInput{Name: "Cartons"})
	s.Require().NoError(err)
	s.False(s.mr.Exists("category:id:" + c.ID))
	s.False(s.mr.Exists("category:list:1:10"))

	got, err = s.svc.Categories.Get(s.ctx, s.alice, c.ID)
	s.Require().NoError(err)
	s.Equal("Cartons", got.Name)

	s.Require().NoError(s.svc.Categories.Delete(s.ctx, s.admin, c.ID))
	_, err = s.svc.Categories.Get(s.ctx, s.alice, c.ID)
	s.Equal(apperr.KindNotFound, s.kind(err))
}
