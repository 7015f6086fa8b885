package service

import (
	"strings"

	"printshop-api/internal/core/apperr"
)

func (s *ServiceSuite) TestFileUploadAndList() {
	c := s.category()
	p := s.product(s.alice, c.ID, 10, 1)

	f, err := s.svc.Files.Upload(s.ctx, s.alice, p.ID, c.ID, upload("artwork"))
	s.Require().NoError(err)
	s.Equal(int64(7), f.Size)
	s.Equal("art.pdf", f.DisplayName)
	s.True(strings.HasPrefix(f.Key, "uploads/"))

	_, err = s.svc.Files.Upload(s.ctx, s.bob, p.ID, c.ID, upload("x"))
	s.Equal(apperr.KindForbidden, s.kind(err))
	_, err = s.svc.Files.Upload(s.ctx, s.alice, "missing", c.ID, upload("x"))
	s.Equal(apperr.KindNotFound, s.kind(err))

	big := upload(strings.Repeat("a", 10))
	big.Size = 2 << 20
	_, err = s.svc.Files.Upload(s.ctx, s.alice, p.ID, c.ID, big)
	s.Equal(apperr.KindBadRequest, s.kind(err))

	views, err := s.svc.Files.ListByProduct(s.ctx, s.alice, p.ID)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Contains(views[0].URL, f.Key)

	_, err = s.svc.Files.ListByProduct(s.ctx, s.bob, p.ID)
	s.Equal(apperr.KindForbidden, s.kind(err))
}

func (s *ServiceSuite) TestFileUploadCategory() {
	c := s.category()
	p := s.product(s.alice, c.ID, 10, 1)

	_, err := s.svc.Files.Upload(s.ctx, s.alice, p.ID, "missing", upload("x"))
	s.Equal(apperr.KindNotFound, s.kind(err))
	s.Zero(s.objects.Len())

	f, err := s.svc.Files.Upload(s.ctx, s.alice, p.ID, "", upload("artwork"))
	s.Require().NoError(err)
	s.Equal(c.ID, f.CategoryID)

	other := s.category()
	f, err = s.svc.Files.Upload(s.ctx, s.alice, p.ID, other.ID, upload("artwork"))
	s.Require().NoError(err)
	s.Equal(other.ID, f.CategoryID)
}

func (s *ServiceSuite) TestFileUpdateDelete() {
	c := s.category()
	p := s.product(s.alice, c.ID, 10, 1)
	f, err := s.svc.Files.Upload(s.ctx, s.alice, p.ID, "", upload("artwork"))
	s.Require().NoError(err)

	name := "  final.pdf "
	got, err := s.svc.Files.Update(s.ctx, s.alice, f.ID, UpdateFileInput{DisplayName: &name})
	s.Require().NoError(err)
	s.Equal("final.pdf", got.DisplayName)

	// 删除对象失败时保留行
	s.objects.failDelete[f.Key] = true
	s.Equal(apperr.KindUpstream, s.kind(s.svc.Files.Delete(s.ctx, s.alice, f.ID)))
	delete(s.objects.failDelete, f.Key)

	s.Equal(apperr.KindForbidden, s.kind(s.svc.Files.Delete(s.ctx, s.bob, f.ID)))
	s.Require().NoError(s.svc.Files.Delete(s.ctx, s.alice, f.ID))
	s.Zero(s.objects.Len())

	s.Equal(apperr.KindNotFound, s.kind(s.svc.Files.Delete(s.ctx, s.alice, f.ID)))
}

func (s *ServiceSuite) TestPurchasedFileIsImmutable() {
	c := s.category()
	p := s.product(s.alice, c.ID, 10, 1)
	f, err := s.svc.Files.Upload(s.ctx, s.alice, p.ID, "", upload("artwork"))
	s.Require().NoError(err)

	yes := true
	_, err = s.svc.Files.Update(s.ctx, s.alice, f.ID, UpdateFileInput{IsPurchased: &yes})
	s.Require().NoError(err)

	name := "x"
	_, err = s.svc.Files.Update(s.ctx, s.alice, f.ID, UpdateFileInput{DisplayName: &name})
	s.Equal(apperr.KindConflict, s.kind(err))
	s.Equal(apperr.KindConflict, s.kind(s.svc.Files.Delete(s.ctx, s.alice, f.ID)))
}
