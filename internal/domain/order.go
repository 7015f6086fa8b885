package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusAwaitingPayment OrderStatus = "awaiting_payment"
	OrderStatusPaid            OrderStatus = "paid"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAwaitingPayment, OrderStatusPaid,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order OrderSubTotal 为各行 SubTotal 之和（下单时快照，不随商品改价变化）
type Order struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`
	UserID         string          `gorm:"index;size:36;not null" json:"userId"`
	OrderSubTotal  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"orderSubTotal"`
	ShippingFee    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"shippingFee"`
	ShippingMethod string          `gorm:"size:64;not null" json:"shippingMethod"`
	PaymentID      string          `gorm:"size:36" json:"paymentId,omitempty"`
	Status         OrderStatus     `gorm:"size:32;not null;default:pending" json:"status"`
	Lines          []OrderLine     `gorm:"foreignKey:OrderID" json:"orderLines"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Total 应付金额
func (o *Order) Total() decimal.Decimal { return o.OrderSubTotal.Add(o.ShippingFee) }

type OrderLine struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string          `gorm:"index;size:36;not null" json:"orderId"`
	ProductID string          `gorm:"index;size:36;not null" json:"productId"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Amount    int             `gorm:"not null" json:"amount"`
	SubTotal  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"subTotal"`
	CreatedAt time.Time       `json:"createdAt"`
}

type OrderRepository interface {
	// Create 写入订单及其所有行
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, f Filter, offset, limit int) ([]Order, int64, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error
}
