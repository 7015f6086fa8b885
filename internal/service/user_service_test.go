package service

import (
	"printshop-api/internal/core/apperr"
	"printshop-api/internal/policy"
)

func (s *ServiceSuite) TestUserAccess() {
	me, err := s.svc.Users.Me(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Equal("alice@example.com", me.Email)

	_, err = s.svc.Users.Get(s.ctx, s.bob, s.alice.ID)
	s.Equal(apperr.KindForbidden, s.kind(err))
	_, err = s.svc.Users.Get(s.ctx, s.admin, "missing")
	s.Equal(apperr.KindNotFound, s.kind(err))

	_, err = s.svc.Users.List(s.ctx, s.alice, PageQuery{Page: 1, Limit: 10})
	s.Equal(apperr.KindForbidden, s.kind(err))
	page, err := s.svc.Users.List(s.ctx, s.admin, PageQuery{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.EqualValues(3, page.Total)
}

func (s *ServiceSuite) TestUserUpdate() {
	name := " Alicia "
	u, err := s.svc.Users.Update(s.ctx, s.alice, s.alice.ID, UpdateUserInput{FirstName: &name})
	s.Require().NoError(err)
	s.Equal("Alicia", u.FirstName)

	role := policy.RoleAdmin
	_, err = s.svc.Users.Update(s.ctx, s.alice, s.alice.ID, UpdateUserInput{Role: &role})
	s.Equal(apperr.KindForbidden, s.kind(err))

	taken := "bob@example.com"
	_, err = s.svc.Users.Update(s.ctx, s.alice, s.alice.ID, UpdateUserInput{Email: &taken})
	s.Equal(apperr.KindConflict, s.kind(err))

	bad := policy.Role("ROOT")
	_, err = s.svc.Users.Update(s.ctx, s.admin, s.alice.ID, UpdateUserInput{Role: &bad})
	s.Equal(apperr.KindBadRequest, s.kind(err))
}

func (s *ServiceSuite) TestUserDeleteAndBan() {
	_, err := s.svc.Users.SetBanned(s.ctx, s.alice, s.bob.ID, true)
	s.Equal(apperr.KindForbidden, s.kind(err))
	_, err = s.svc.Users.SetBanned(s.ctx, s.admin, s.admin.ID, true)
	s.Equal(apperr.KindBadRequest, s.kind(err))

	u, err := s.svc.Users.SetBanned(s.ctx, s.admin, s.bob.ID, true)
	s.Require().NoError(err)
	s.True(u.Banned)

	s.Equal(apperr.KindForbidden, s.kind(s.svc.Users.Delete(s.ctx, s.bob, s.alice.ID)))
	s.Require().NoError(s.svc.Users.Delete(s.ctx, s.alice, s.alice.ID))
	_, err = s.svc.Users.Get(s.ctx, s.admin, s.alice.ID)
	s.Equal(apperr.KindNotFound, s.kind(err))
}

func (s *ServiceSuite) TestEnsureAdmin() {
	u, err := s.svc.Users.EnsureAdmin(s.ctx, "root@example.com", "root-pass")
	s.Require().NoError(err)
	s.Equal(policy.RoleAdmin, u.Role)

	again, err := s.svc.Users.EnsureAdmin(s.ctx, "ROOT@example.com", "ignored")
	s.Require().NoError(err)
	s.Equal(u.ID, again.ID)

	promoted, err := s.svc.Users.EnsureAdmin(s.ctx, "bob@example.com", "whatever")
	s.Require().NoError(err)
	s.Equal(s.bob.ID, promoted.ID)
	s.Equal(policy.RoleAdmin, promoted.Role)
}
