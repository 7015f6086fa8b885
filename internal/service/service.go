// Package service 业务用例。每个方法显式接收调用者 policy.Actor：
// 先确认目标记录存在，再做授权判断，最后修改。
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"printshop-api/internal/core/apperr"
	"printshop-api/internal/core/auth"
	"printshop-api/internal/core/cache"
	"printshop-api/internal/core/events"
	"printshop-api/internal/core/payment"
	"printshop-api/internal/core/storage"
	"printshop-api/internal/domain"
	"printshop-api/internal/policy"
)

// TokenRevoker 注销 token 的存取（Redis 实现见 auth.Denylist）
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	Revoked(ctx context.Context, jti string) (bool, error)
}

type FileOptions struct {
	PresignTTL     time.Duration
	Retention      time.Duration
	SweepBatch     int
	MaxUploadBytes int64
}

type PaymentOptions struct {
	CurrencyCode string
	Lang         string
	Channel      string
	PostBackURL  string
}

type Deps struct {
	Store    domain.Store
	Cache    *cache.Cache // nil 时分类不走缓存
	Objects  storage.ObjectStore
	Gateway  payment.Gateway
	Events   events.Publisher
	Tokens   *auth.JWTer
	Revoker  TokenRevoker // nil 时 logout 只清 cookie
	Log      *zap.Logger
	Files    FileOptions
	Payments PaymentOptions
}

type Services struct {
	Auth       *AuthService
	Users      *UserService
	Addresses  *AddressService
	Categories *CategoryService
	Products   *ProductService
	Files      *FileService
	Carts      *CartService
	Orders     *OrderService
	Payments   *PaymentService
	Sweeper    *Sweeper
}

func New(d Deps) *Services {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Files.PresignTTL <= 0 {
		d.Files.PresignTTL = time.Hour
	}
	if d.Files.Retention <= 0 {
		d.Files.Retention = 24 * time.Hour
	}
	if d.Files.SweepBatch <= 0 {
		d.Files.SweepBatch = 500
	}
	b := base{log: d.Log}
	return &Services{
		Auth:       &AuthService{base: b.named("auth"), store: d.Store, tokens: d.Tokens, revoker: d.Revoker},
		Users:      &UserService{base: b.named("user"), store: d.Store},
		Addresses:  &AddressService{base: b.named("address"), store: d.Store},
		Categories: &CategoryService{base: b.named("category"), store: d.Store, cache: d.Cache, ttl: 10 * time.Minute},
		Products:   &ProductService{base: b.named("product"), store: d.Store, objects: d.Objects, maxUpload: d.Files.MaxUploadBytes},
		Files:      &FileService{base: b.named("file"), store: d.Store, objects: d.Objects, opt: d.Files},
		Carts:      &CartService{base: b.named("cart"), store: d.Store},
		Orders:     &OrderService{base: b.named("order"), store: d.Store, events: d.Events},
		Payments:   &PaymentService{base: b.named("payment"), store: d.Store, gateway: d.Gateway, events: d.Events, opt: d.Payments},
		Sweeper:    &Sweeper{base: b.named("sweeper"), store: d.Store, objects: d.Objects, opt: d.Files, now: time.Now},
	}
}

type base struct{ log *zap.Logger }

func (b base) named(n string) base { return base{log: b.log.Named(n)} }

// track 以 defer 方式使用：失败时补全为业务错误并记录 op/actor/target
func (b base) track(op string, a policy.Actor, target string, errp *error, msg string) {
	if *errp == nil {
		return
	}
	err := apperr.Known(*errp, msg)
	*errp = err
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("actor_id", a.ID),
		zap.String("actor_role", string(a.Role)),
		zap.String("target_id", target),
		zap.String("kind", apperr.KindOf(err).String()),
		zap.Error(err),
	}
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Err != nil {
		fields = append(fields, zap.NamedError("cause", ae.Err))
	}
	switch apperr.KindOf(err) {
	case apperr.KindInternal, apperr.KindUpstream:
		b.log.Error(op+" failed", fields...)
	default:
		b.log.Warn(op+" rejected", fields...)
	}
}

// publish 事件发送失败只记日志，不影响已提交的业务
func (b base) publish(ctx context.Context, p events.Publisher, typ, key string, payload any) {
	if err := p.Publish(context.WithoutCancel(ctx), typ, key, payload); err != nil {
		b.log.Warn("publish event failed", zap.String("type", typ), zap.String("key", key), zap.Error(err))
	}
}

// target 把查找结果转成策略判断的输入
func target(k policy.Kind, found bool, owner string) policy.Resource {
	if !found {
		return policy.Missing(k)
	}
	return policy.Owned(k, owner)
}
