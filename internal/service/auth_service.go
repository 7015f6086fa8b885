package service

import (
	"context"
	"strings"
	"time"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/core/auth"
	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/pkg/utils"
)

type AuthService struct {
	base
	store   domain.Store
	tokens  *auth.JWTer
	revoker TokenRevoker
}

type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required,max=64"`
	LastName  string `json:"lastName" binding:"required,max=64"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// Register 公开注册，角色固定为 USER
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (u *domain.User, err error) {
	email := normalizeEmail(in.Email)
	defer s.track("auth.register", policy.Actor{}, email, &err, "failed to register")

	if email == "" || in.Password == "" || strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, apperr.BadRequest("firstName, lastName, email and password are required")
	}
	existing, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.BadRequest("invalid password")
	}
	u = &domain.User{
		ID:           utils.NewID(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         policy.RoleUser,
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		if apperr.IsDuplicate(err) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (res *LoginResult, err error) {
	email := normalizeEmail(in.Email)
	defer s.track("auth.login", policy.Actor{}, email, &err, "failed to login")

	u, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	// 用户不存在与密码错误返回同一提示
	if u == nil || !utils.CheckPassword(in.Password, u.PasswordHash) {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if u.Banned {
		return nil, apperr.Forbidden("account is banned")
	}
	token, claims, err := s.tokens.Issue(u.ID, string(u.Role))
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}
	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: u}, nil
}

// Logout 撤销 token 直到其自然过期
func (s *AuthService) Logout(ctx context.Context, a policy.Actor, c *auth.Claims) (err error) {
	defer s.track("auth.logout", a, a.ID, &err, "failed to logout")
	if c == nil || s.revoker == nil || c.ExpiresAt == nil {
		return nil
	}
	return s.revoker.Revoke(ctx, c.ID, c.ExpiresAt.Time)
}

// Authenticate 校验 token 并按数据库中的当前角色构造 Actor
func (s *AuthService) Authenticate(ctx context.Context, token string) (a policy.Actor, c *auth.Claims, err error) {
	defer s.track("auth.authenticate", policy.Actor{}, "", &err, "failed to authenticate")

	if token == "" {
		return policy.Actor{}, nil, apperr.Unauthorized("missing token")
	}
	c, err = s.tokens.Parse(token)
	if err != nil {
		return policy.Actor{}, nil, apperr.Unauthorized("invalid token")
	}
	if s.revoker != nil {
		revoked, err := s.revoker.Revoked(ctx, c.ID)
		if err != nil {
			return policy.Actor{}, nil, apperr.Upstream("token store unavailable", err)
		}
		if revoked {
			return policy.Actor{}, nil, apperr.Unauthorized("token has been revoked")
		}
	}
	u, err := s.store.Users().FindByID(ctx, c.UID)
	if err != nil {
		return policy.Actor{}, nil, err
	}
	if u == nil {
		return policy.Actor{}, nil, apperr.Unauthorized("user no longer exists")
	}
	if u.Banned {
		return policy.Actor{}, nil, apperr.Forbidden("account is banned")
	}
	return u.Actor(), c, nil
}
