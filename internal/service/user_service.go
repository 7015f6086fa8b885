package service

import (
	"context"
	"strings"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/pkg/utils"
)

type UserService struct {
	base
	store domain.Store
}

// UpdateUserInput 只合并非 nil 字段
type UpdateUserInput struct {
	FirstName *string      `json:"firstName" binding:"omitempty,max=64"`
	LastName  *string      `json:"lastName" binding:"omitempty,max=64"`
	Email     *string      `json:"email" binding:"omitempty,email"`
	Phone     *string      `json:"phone" binding:"omitempty,max=32"`
	Password  *string      `json:"password" binding:"omitempty,min=8,max=72"`
	Role      *policy.Role `json:"role"`
}

func (s *UserService) Me(ctx context.Context, a policy.Actor) (*domain.User, error) {
	return s.Get(ctx, a, a.ID)
}

func (s *UserService) List(ctx context.Context, a policy.Actor, q PageQuery) (p Page[domain.User], err error) {
	defer s.track("user.list", a, "", &err, "failed to list users")
	if err := policy.Check(a, policy.Collection(policy.KindUser), policy.ActionList); err != nil {
		return p, err
	}
	if err := q.Validate(); err != nil {
		return p, err
	}
	items, total, err := s.store.Users().List(ctx, q.Offset(), q.Limit)
	if err != nil {
		return p, err
	}
	return NewPage(items, total, q), nil
}

func (s *UserService) load(ctx context.Context, a policy.Actor, id string, act policy.Action) (*domain.User, error) {
	u, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(a, target(policy.KindUser, u != nil, id), act); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, a policy.Actor, id string) (u *domain.User, err error) {
	defer s.track("user.get", a, id, &err, "failed to get user")
	return s.load(ctx, a, id, policy.ActionRead)
}

func (s *UserService) Update(ctx context.Context, a policy.Actor, id string, in UpdateUserInput) (u *domain.User, err error) {
	defer s.track("user.update", a, id, &err, "failed to update user")

	u, err = s.load(ctx, a, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		u.Email = normalizeEmail(*in.Email)
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, apperr.BadRequest("invalid password")
		}
		u.PasswordHash = hash
	}
	if in.Role != nil && *in.Role != u.Role {
		if !a.IsAdmin() {
			return nil, apperr.Forbidden("only admins can change roles")
		}
		if !in.Role.Valid() {
			return nil, apperr.BadRequest("invalid role")
		}
		u.Role = *in.Role
	}
	if err := s.store.Users().Update(ctx, u); err != nil {
		if apperr.IsDuplicate(err) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, a policy.Actor, id string) (err error) {
	defer s.track("user.delete", a, id, &err, "failed to delete user")
	if _, err := s.load(ctx, a, id, policy.ActionDelete); err != nil {
		return err
	}
	return s.store.Users().Delete(ctx, id)
}

// SetBanned 管理端封禁/解封；被封禁用户的 token 在鉴权时被拒绝
func (s *UserService) SetBanned(ctx context.Context, a policy.Actor, id string, banned bool) (u *domain.User, err error) {
	defer s.track("user.ban", a, id, &err, "failed to ban user")
	if !a.IsAdmin() {
		return nil, policy.Check(a, policy.Collection(policy.KindUser), policy.ActionList)
	}
	u, err = s.load(ctx, a, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if u.ID == a.ID {
		return nil, apperr.BadRequest("cannot ban yourself")
	}
	u.Banned = banned
	if err := s.store.Users().Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureAdmin 不存在则创建管理员账号；已存在的同邮箱账号提升为 ADMIN
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (u *domain.User, err error) {
	email = normalizeEmail(email)
	defer s.track("user.ensure_admin", policy.Actor{}, email, &err, "failed to bootstrap admin")

	if email == "" || password == "" {
		return nil, apperr.BadRequest("bootstrap admin email and password are required")
	}
	u, err = s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u != nil {
		if u.Role == policy.RoleAdmin {
			return u, nil
		}
		u.Role = policy.RoleAdmin
		return u, s.store.Users().Update(ctx, u)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperr.BadRequest("invalid password")
	}
	u = &domain.User{
		ID:           utils.NewID(),
		FirstName:    "Admin",
		LastName:     "Bootstrap",
		Email:        email,
		PasswordHash: hash,
		Role:         policy.RoleAdmin,
	}
	return u, s.store.Users().Create(ctx, u)
}
