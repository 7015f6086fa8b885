package service

import (
	"context"

	"github.com/shopspring/decimal"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/core/events"
	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/pkg/utils"
)

type OrderService struct {
	base
	store  domain.Store
	events events.Publisher
}

type OrderItem struct {
	ProductID string `json:"productId" binding:"required"`
}

// CreateOrderInput 只接受商品 id；金额一律按服务端当前价格计算
type CreateOrderInput struct {
	Items          []OrderItem     `json:"items" binding:"required,min=1,dive"`
	ShippingFee    decimal.Decimal `json:"shippingFee"`
	ShippingMethod string          `json:"shippingMethod" binding:"required,max=64"`
}

type UpdateOrderStatusInput struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

func (in CreateOrderInput) validate() error {
	if len(in.Items) == 0 {
		return apperr.BadRequest("order must contain at least one item")
	}
	seen := make(map[string]struct{}, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" {
			return apperr.BadRequest("productId is required")
		}
		if _, dup := seen[it.ProductID]; dup {
			return apperr.BadRequest("duplicate product " + it.ProductID + " in order")
		}
		seen[it.ProductID] = struct{}{}
	}
	if in.ShippingFee.IsNegative() {
		return apperr.BadRequest("shippingFee must not be negative")
	}
	if !domain.FitsMoney(in.ShippingFee, domain.PriceDigits) {
		return apperr.BadRequest("shippingFee must have at most 2 decimal places and 10 integer digits")
	}
	if in.ShippingMethod == "" {
		return apperr.BadRequest("shippingMethod is required")
	}
	return nil
}

// Create 在一个事务内查商品、累计小计、写订单与订单行并锁定商品；任一步失败整体回滚
func (s *OrderService) Create(ctx context.Context, a policy.Actor, in CreateOrderInput) (o *domain.Order, err error) {
	defer s.track("order.create", a, "", &err, "failed to create order")

	if err := policy.Check(a, policy.Collection(policy.KindOrder), policy.ActionCreate); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	order := &domain.Order{
		ID:             utils.NewID(),
		UserID:         a.ID,
		ShippingFee:    in.ShippingFee.Round(domain.MoneyScale),
		ShippingMethod: in.ShippingMethod,
		Status:         domain.OrderStatusPending,
	}
	err = s.store.Tx(ctx, func(tx domain.Store) error {
		subTotal := decimal.Zero
		ids := make([]string, 0, len(in.Items))
		lines := make([]domain.OrderLine, 0, len(in.Items))
		for _, it := range in.Items {
			p, err := tx.Products().FindByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return apperr.NotFound("product " + it.ProductID + " not found")
			}
			if err := policy.Check(a, policy.Owned(policy.KindProduct, p.UserID), policy.ActionRead); err != nil {
				return err
			}
			if err := policy.CheckMutable(policy.KindProduct, p.IsPurchased); err != nil {
				return err
			}
			line := domain.LineTotal(p.UnitPrice, p.Amount)
			subTotal = subTotal.Add(line)
			lines = append(lines, domain.OrderLine{
				ID:        utils.NewID(),
				ProductID: p.ID,
				UnitPrice: p.UnitPrice,
				Amount:    p.Amount,
				SubTotal:  line,
			})
			ids = append(ids, p.ID)
		}
		if !domain.FitsMoney(subTotal, domain.TotalDigits) {
			return apperr.BadRequest("orderSubTotal exceeds the maximum amount")
		}
		order.OrderSubTotal = subTotal
		order.Lines = lines
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}
		// 条件更新：并发下单同一商品时只有一方成功
		n, err := tx.Products().MarkPurchased(ctx, ids)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return apperr.Conflict("product is already purchased and can no longer be modified")
		}
		return tx.Files().MarkPurchasedByProducts(ctx, ids)
	})
	if err != nil {
		return nil, err
	}

	ordersCreated.Inc()
	s.publish(ctx, s.events, events.OrderCreated, order.ID, map[string]any{
		"orderId":       order.ID,
		"userId":        order.UserID,
		"orderSubTotal": order.OrderSubTotal,
		"shippingFee":   order.ShippingFee,
		"lines":         len(order.Lines),
	})
	return order, nil
}

func (s *OrderService) list(ctx context.Context, f domain.Filter, q PageQuery) (Page[domain.Order], error) {
	if err := q.Validate(); err != nil {
		return Page[domain.Order]{}, err
	}
	items, total, err := s.store.Orders().List(ctx, f, q.Offset(), q.Limit)
	if err != nil {
		return Page[domain.Order]{}, err
	}
	return NewPage(items, total, q), nil
}

func (s *OrderService) List(ctx context.Context, a policy.Actor, q PageQuery) (p Page[domain.Order], err error) {
	defer s.track("order.list", a, "", &err, "failed to list orders")
	if err := policy.Check(a, policy.Collection(policy.KindOrder), policy.ActionList); err != nil {
		return p, err
	}
	return s.list(ctx, domain.Filter{OwnerID: policy.RowOwner(a)}, q)
}

func (s *OrderService) ListByUser(ctx context.Context, a policy.Actor, userID string, q PageQuery) (p Page[domain.Order], err error) {
	defer s.track("order.list_by_user", a, userID, &err, "failed to list orders")
	if err := policy.Check(a, policy.Owned(policy.KindOrder, userID), policy.ActionList); err != nil {
		return p, err
	}
	return s.list(ctx, domain.Filter{OwnerID: userID}, q)
}

func (s *OrderService) load(ctx context.Context, a policy.Actor, id string, act policy.Action) (*domain.Order, error) {
	o, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner := ""
	if o != nil {
		owner = o.UserID
	}
	if err := policy.Check(a, target(policy.KindOrder, o != nil, owner), act); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) Get(ctx context.Context, a policy.Actor, id string) (o *domain.Order, err error) {
	defer s.track("order.get", a, id, &err, "failed to get order")
	return s.load(ctx, a, id, policy.ActionRead)
}

// UpdateStatus 普通用户只能取消自己的订单，其余状态由管理员推进
func (s *OrderService) UpdateStatus(ctx context.Context, a policy.Actor, id string, status domain.OrderStatus) (o *domain.Order, err error) {
	defer s.track("order.update_status", a, id, &err, "failed to update order")

	o, err = s.load(ctx, a, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperr.BadRequest("invalid order status")
	}
	if !a.IsAdmin() && status != domain.OrderStatusCancelled {
		return nil, apperr.Forbidden("not authorized to set order status")
	}
	o.Status = status
	if err := s.store.Orders().Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) Delete(ctx context.Context, a policy.Actor, id string) (err error) {
	defer s.track("order.delete", a, id, &err, "failed to delete order")
	if _, err := s.load(ctx, a, id, policy.ActionDelete); err != nil {
		return err
	}
	return s.store.Orders().Delete(ctx, id)
}
