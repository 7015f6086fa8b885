package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Payment 每个订单一次支付发起，创建后不可变
type Payment struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	OrderID       string          `gorm:"uniqueIndex;size:36;not null" json:"orderId"`
	UserID        string          `gorm:"index;size:36;not null" json:"userId"`
	RefNo         string          `gorm:"size:64;not null" json:"refNo"`
	ProductDetail string          `gorm:"size:512" json:"productDetail"`
	CustomerEmail string          `gorm:"size:191" json:"customerEmail"`
	CurrencyCode  string          `gorm:"size:8" json:"currencyCode"`
	Total         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	Lang          string          `gorm:"size:8" json:"lang"`
	Channel       string          `gorm:"size:32" json:"channel"`
	Status        string          `gorm:"size:32" json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	FindByOrderID(ctx context.Context, orderID string) (*Payment, error)
}
