package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	UserID    string          `gorm:"index;size:36;not null" json:"userId"`
	ProductID string          `gorm:"index;size:36;not null" json:"productId"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Amount    int             `gorm:"not null" json:"amount"`
	SubTotal  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"subTotal"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type CartRepository interface {
	Create(ctx context.Context, c *Cart) error
	FindByID(ctx context.Context, id string) (*Cart, error)
	List(ctx context.Context, f Filter, offset, limit int) ([]Cart, int64, error)
	Update(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, id string) error
}
