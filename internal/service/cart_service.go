package service

import (
	"context"

	"github.com/shopspring/decimal"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/pkg/utils"
)

type CartService struct {
	base
	store domain.Store
}

type AddCartInput struct {
	ProductID string `json:"productId" binding:"required"`
	Amount    int    `json:"amount" binding:"required,min=1"`
}

type UpdateCartInput struct {
	Amount int `json:"amount" binding:"required,min=1"`
}

// product 购物车引用的商品须存在、可读且未购买
func (s *CartService) product(ctx context.Context, a policy.Actor, id string) (*domain.Product, error) {
	p, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner := ""
	if p != nil {
		owner = p.UserID
	}
	if err := policy.Check(a, target(policy.KindProduct, p != nil, owner), policy.ActionRead); err != nil {
		return nil, err
	}
	if err := policy.CheckMutable(policy.KindProduct, p.IsPurchased); err != nil {
		return nil, err
	}
	return p, nil
}

func cartLine(p *domain.Product, amount int) (decimal.Decimal, error) {
	sub := domain.LineTotal(p.UnitPrice, amount)
	if !domain.FitsMoney(sub, domain.TotalDigits) {
		return decimal.Zero, apperr.BadRequest("subTotal exceeds the maximum amount")
	}
	return sub, nil
}

func (s *CartService) Add(ctx context.Context, a policy.Actor, in AddCartInput) (c *domain.Cart, err error) {
	defer s.track("cart.add", a, in.ProductID, &err, "failed to add to cart")

	if err := policy.Check(a, policy.Collection(policy.KindCart), policy.ActionCreate); err != nil {
		return nil, err
	}
	if in.Amount < 1 {
		return nil, apperr.BadRequest("amount must be at least 1")
	}
	p, err := s.product(ctx, a, in.ProductID)
	if err != nil {
		return nil, err
	}
	sub, err := cartLine(p, in.Amount)
	if err != nil {
		return nil, err
	}
	c = &domain.Cart{
		ID:        utils.NewID(),
		UserID:    a.ID,
		ProductID: p.ID,
		Amount:    in.Amount,
		SubTotal:  sub,
	}
	if err := s.store.Carts().Create(ctx, c); err != nil {
		return nil, err
	}
	c.Product = p
	return c, nil
}

func (s *CartService) List(ctx context.Context, a policy.Actor, q PageQuery) (p Page[domain.Cart], err error) {
	defer s.track("cart.list", a, "", &err, "failed to list carts")

	if err := policy.Check(a, policy.Collection(policy.KindCart), policy.ActionList); err != nil {
		return p, err
	}
	if err := q.Validate(); err != nil {
		return p, err
	}
	items, total, err := s.store.Carts().List(ctx, domain.Filter{OwnerID: policy.RowOwner(a)}, q.Offset(), q.Limit)
	if err != nil {
		return p, err
	}
	return NewPage(items, total, q), nil
}

func (s *CartService) load(ctx context.Context, a policy.Actor, id string, act policy.Action) (*domain.Cart, error) {
	c, err := s.store.Carts().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner := ""
	if c != nil {
		owner = c.UserID
	}
	if err := policy.Check(a, target(policy.KindCart, c != nil, owner), act); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) Get(ctx context.Context, a policy.Actor, id string) (c *domain.Cart, err error) {
	defer s.track("cart.get", a, id, &err, "failed to get cart")
	return s.load(ctx, a, id, policy.ActionRead)
}

// Update 改数量，按商品当前单价重算小计
func (s *CartService) Update(ctx context.Context, a policy.Actor, id string, in UpdateCartInput) (c *domain.Cart, err error) {
	defer s.track("cart.update", a, id, &err, "failed to update cart")

	c, err = s.load(ctx, a, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if in.Amount < 1 {
		return nil, apperr.BadRequest("amount must be at least 1")
	}
	p, err := s.product(ctx, a, c.ProductID)
	if err != nil {
		return nil, err
	}
	sub, err := cartLine(p, in.Amount)
	if err != nil {
		return nil, err
	}
	c.Amount = in.Amount
	c.SubTotal = sub
	c.Product = p
	if err := s.store.Carts().Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) Delete(ctx context.Context, a policy.Actor, id string) (err error) {
	defer s.track("cart.delete", a, id, &err, "failed to delete cart")
	if _, err := s.load(ctx, a, id, policy.ActionDelete); err != nil {
		return err
	}
	return s.store.Carts().Delete(ctx, id)
}
