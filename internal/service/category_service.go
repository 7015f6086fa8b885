package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/core/cache"
	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/pkg/utils"
)

const categoryCachePrefix = "category:"

type CategoryService struct {
	base
	store domain.Store
	cache *cache.Cache
	ttl   time.Duration
}

type CategoryInput struct {
	Name string `json:"name" binding:"required,max=128"`
}

func (s *CategoryService) Create(ctx context.Context, a policy.Actor, in CategoryInput) (c *domain.ProductCategory, err error) {
	defer s.track("category.create", a, "", &err, "failed to create category")

	if err := policy.Check(a, policy.Collection(policy.KindCategory), policy.ActionCreate); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.BadRequest("name is required")
	}
	c = &domain.ProductCategory{ID: utils.NewID(), Name: name}
	if err := s.store.Categories().Create(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *CategoryService) List(ctx context.Context, a policy.Actor, q PageQuery) (p Page[domain.ProductCategory], err error) {
	defer s.track("category.list", a, "", &err, "failed to list categories")

	if err := policy.Check(a, policy.Collection(policy.KindCategory), policy.ActionList); err != nil {
		return p, err
	}
	if err := q.Validate(); err != nil {
		return p, err
	}
	load := func(ctx context.Context) (*Page[domain.ProductCategory], error) {
		items, total, err := s.store.Categories().List(ctx, q.Offset(), q.Limit)
		if err != nil {
			return nil, err
		}
		pg := NewPage(items, total, q)
		return &pg, nil
	}
	var out *Page[domain.ProductCategory]
	if s.cache == nil {
		out, err = load(ctx)
	} else {
		key := fmt.Sprintf("%slist:%d:%d", categoryCachePrefix, q.Page, q.Limit)
		out, err = cache.GetOrLoadJSON(s.cache, ctx, key, s.ttl, load)
	}
	if err != nil {
		return p, err
	}
	return *out, nil
}

func (s *CategoryService) find(ctx context.Context, id string) (*domain.ProductCategory, error) {
	if s.cache == nil {
		return s.store.Categories().FindByID(ctx, id)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, categoryCachePrefix+"id:"+id, s.ttl, func(ctx context.Context) (*domain.ProductCategory, error) {
		return s.store.Categories().FindByID(ctx, id)
	})
}

func (s *CategoryService) Get(ctx context.Context, a policy.Actor, id string) (c *domain.ProductCategory, err error) {
	defer s.track("category.get", a, id, &err, "failed to get category")

	c, err = s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(a, target(policy.KindCategory, c != nil, ""), policy.ActionRead); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, a policy.Actor, id string, in CategoryInput) (c *domain.ProductCategory, err error) {
	defer s.track("category.update", a, id, &err, "failed to update category")

	c, err = s.store.Categories().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(a, target(policy.KindCategory, c != nil, ""), policy.ActionUpdate); err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	if err := s.store.Categories().Update(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, a policy.Actor, id string) (err error) {
	defer s.track("category.delete", a, id, &err, "failed to delete category")

	c, err := s.store.Categories().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Check(a, target(policy.KindCategory, c != nil, ""), policy.ActionDelete); err != nil {
		return err
	}
	if err := s.store.Categories().Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate 缓存失效失败只记日志，数据以库为准（TTL 兜底）
func (s *CategoryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, categoryCachePrefix); err != nil {
		s.log.Warn("category cache invalidate failed", zap.Error(err))
	}
}
