package service

import (
	"printshop-api/internal/core/apperr"
	"printshop-api/internal/policy"
)

func (s *ServiceSuite) register(email string) (*LoginResult, policy.Actor) {
	_, err := s.svc.Auth.Register(s.ctx, RegisterInput{FirstName: "Carol", LastName: "C", Email: email, Password: "secret-pass"})
	s.Require().NoError(err)
	res, err := s.svc.Auth.Login(s.ctx, LoginInput{Email: email, Password: "secret-pass"})
	s.Require().NoError(err)
	return res, res.User.Actor()
}

func (s *ServiceSuite) TestRegisterLogin() {
	u, err := s.svc.Auth.Register(s.ctx, RegisterInput{FirstName: "Carol", LastName: "C", Email: " Carol@Example.com ", Password: "secret-pass"})
	s.Require().NoError(err)
	s.Equal("carol@example.com", u.Email)
	s.Equal(policy.RoleUser, u.Role)
	s.NotEqual("secret-pass", u.PasswordHash)

	_, err = s.svc.Auth.Register(s.ctx, RegisterInput{FirstName: "C", LastName: "C", Email: "carol@example.com", Password: "another-pass"})
	s.Equal(apperr.KindConflict, s.kind(err))

	_, err = s.svc.Auth.Login(s.ctx, LoginInput{Email: "carol@example.com", Password: "wrong-pass"})
	s.Equal(apperr.KindUnauthorized, s.kind(err))
	_, err = s.svc.Auth.Login(s.ctx, LoginInput{Email: "nobody@example.com", Password: "secret-pass"})
	s.Equal(apperr.KindUnauthorized, s.kind(err))

	res, err := s.svc.Auth.Login(s.ctx, LoginInput{Email: "CAROL@example.com", Password: "secret-pass"})
	s.Require().NoError(err)
	s.NotEmpty(res.Token)

	a, claims, err := s.svc.Auth.Authenticate(s.ctx, res.Token)
	s.Require().NoError(err)
	s.Equal(u.ID, a.ID)
	s.Equal(policy.RoleUser, a.Role)
	s.Equal(u.ID, claims.UID)
}

func (s *ServiceSuite) TestLogoutRevokesToken() {
	res, _ := s.register("dave@example.com")
	a, claims, err := s.svc.Auth.Authenticate(s.ctx, res.Token)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Auth.Logout(s.ctx, a, claims))
	_, _, err = s.svc.Auth.Authenticate(s.ctx, res.Token)
	s.Equal(apperr.KindUnauthorized, s.kind(err))
	s.Contains(err.Error(), "revoked")
	s.True(s.mr.Exists("auth:revoked:" + claims.ID))
}

func (s *ServiceSuite) TestAuthenticateFailsClosedWithoutRedis() {
	res, _ := s.register("gina@example.com")
	s.mr.Close()

	_, _, err := s.svc.Auth.Authenticate(s.ctx, res.Token)
	s.Equal(apperr.KindUpstream, s.kind(err))
}

func (s *ServiceSuite) TestAuthenticateRejectsBadTokens() {
	for _, tok := range []string{"", "not-a-jwt"} {
		_, _, err := s.svc.Auth.Authenticate(s.ctx, tok)
		s.Equal(apperr.KindUnauthorized, s.kind(err))
	}

	res, a := s.register("erin@example.com")
	_, err := s.svc.Users.SetBanned(s.ctx, s.admin, a.ID, true)
	s.Require().NoError(err)
	_, _, err = s.svc.Auth.Authenticate(s.ctx, res.Token)
	s.Equal(apperr.KindForbidden, s.kind(err))
	_, err = s.svc.Auth.Login(s.ctx, LoginInput{Email: "erin@example.com", Password: "secret-pass"})
	s.Equal(apperr.KindForbidden, s.kind(err))
}

func (s *ServiceSuite) TestAuthenticateUsesCurrentRole() {
	res, a := s.register("frank@example.com")
	role := policy.RoleAdmin
	_, err := s.svc.Users.Update(s.ctx, s.admin, a.ID, UpdateUserInput{Role: &role})
	s.Require().NoError(err)

	got, _, err := s.svc.Auth.Authenticate(s.ctx, res.Token)
	s.Require().NoError(err)
	s.True(got.IsAdmin())
}
