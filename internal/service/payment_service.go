package service

import (
	"context"

	"go.uber.org/zap"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/core/events"
	"printshop-api/internal/core/payment"
	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
	"printshop-api/pkg/utils"
)

type PaymentService struct {
	base
	store   domain.Store
	gateway payment.Gateway
	events  events.Publisher
	opt     PaymentOptions
}

// CreatePaymentInput 空字段使用配置里的默认值
type CreatePaymentInput struct {
	OrderID       string `json:"orderId" binding:"required"`
	ProductDetail string `json:"productDetail" binding:"required,max=512"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	CurrencyCode  string `json:"currencyCode" binding:"omitempty,max=8"`
	Lang          string `json:"lang" binding:"omitempty,max=8"`
	Channel       string `json:"channel" binding:"omitempty,max=32"`
}

type PaymentResult struct {
	RedirectURL string `json:"redirectUrl"`
	Status      string `json:"status"`
	StatusName  string `json:"statusName"`
	PaymentID   string `json:"paymentId"`
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Create 每个订单只能发起一次支付，且订单须为 pending；金额由订单计算，不信任客户端
func (s *PaymentService) Create(ctx context.Context, a policy.Actor, in CreatePaymentInput) (res *PaymentResult, err error) {
	defer s.track("payment.create", a, in.OrderID, &err, "failed to create payment")

	o, err := s.store.Orders().FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	owner := ""
	if o != nil {
		owner = o.UserID
	}
	if err := policy.Check(a, target(policy.KindOrder, o != nil, owner), policy.ActionRead); err != nil {
		return nil, err
	}
	existing, err := s.store.Payments().FindByOrderID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil || o.PaymentID != "" {
		return nil, apperr.Conflict("payment already exists for this order")
	}
	if o.Status != domain.OrderStatusPending {
		return nil, apperr.Conflict("order is " + string(o.Status) + ", payment requires a pending order")
	}
	if s.gateway == nil {
		return nil, apperr.Internal("payment gateway is not configured", nil)
	}

	req := payment.Request{
		OrderNo:       o.ID,
		RefNo:         utils.NewRefNo(),
		ProductDetail: in.ProductDetail,
		CustomerEmail: in.CustomerEmail,
		CurrencyCode:  orDefault(in.CurrencyCode, s.opt.CurrencyCode),
		Total:         o.Total(),
		Lang:          orDefault(in.Lang, s.opt.Lang),
		Channel:       orDefault(in.Channel, s.opt.Channel),
		PostBackURL:   s.opt.PostBackURL,
	}
	gw, err := s.gateway.Initiate(ctx, req)
	if err != nil {
		paymentsInitiated.WithLabelValues("error").Inc()
		if apperr.KindOf(err) == apperr.KindInternal {
			return nil, err
		}
		return nil, apperr.Upstream("payment gateway request failed", err)
	}
	paymentsInitiated.WithLabelValues("ok").Inc()

	p := &domain.Payment{
		ID:            utils.NewID(),
		OrderID:       o.ID,
		UserID:        o.UserID,
		RefNo:         req.RefNo,
		ProductDetail: req.ProductDetail,
		CustomerEmail: req.CustomerEmail,
		CurrencyCode:  req.CurrencyCode,
		Total:         req.Total,
		Lang:          req.Lang,
		Channel:       req.Channel,
		Status:        gw.Status,
	}
	err = s.store.Tx(ctx, func(tx domain.Store) error {
		if err := tx.Payments().Create(ctx, p); err != nil {
			if apperr.IsDuplicate(err) {
				return apperr.Conflict("payment already exists for this order")
			}
			return err
		}
		o.PaymentID = p.ID
		o.Status = domain.OrderStatusAwaitingPayment
		return tx.Orders().Update(ctx, o)
	})
	if err != nil {
		// 网关已受理但本地未落库，需要人工对账
		s.log.Error("payment initiated but not recorded",
			zap.String("order_id", o.ID), zap.String("ref_no", req.RefNo), zap.Error(err))
		return nil, err
	}

	s.publish(ctx, s.events, events.PaymentCreated, o.ID, map[string]any{
		"paymentId": p.ID,
		"orderId":   o.ID,
		"refNo":     p.RefNo,
		"total":     p.Total,
		"status":    p.Status,
	})
	return &PaymentResult{
		RedirectURL: gw.PostBackURL,
		Status:      gw.Status,
		StatusName:  gw.StatusName,
		PaymentID:   p.ID,
	}, nil
}
