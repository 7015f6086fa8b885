package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product 一个印刷品订制项；SubTotal 恒等于 UnitPrice × Amount
type Product struct {
	ID           string                      `gorm:"primaryKey;size:36" json:"id"`
	UserID       string                      `gorm:"index;size:36;not null" json:"userId"`
	CategoryID   string                      `gorm:"index;size:36;not null" json:"categoryId"`
	Category     *ProductCategory            `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Size         string                      `gorm:"size:64;not null" json:"size"`
	Material     string                      `gorm:"size:64;not null" json:"material"`
	Shape        string                      `gorm:"size:64;not null" json:"shape"`
	PrintingSide string                      `gorm:"size:64;not null" json:"printingSide"`
	ParcelColor  datatypes.JSONSlice[string] `json:"parcelColor"`
	InkColor     datatypes.JSONSlice[string] `json:"inkColor"`
	UnitPrice    decimal.Decimal             `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Amount       int                         `gorm:"not null" json:"amount"`
	SubTotal     decimal.Decimal             `gorm:"type:decimal(14,2);not null" json:"subTotal"`
	IsPurchased  bool                        `gorm:"not null;default:false" json:"isPurchased"`
	Note         string                      `gorm:"size:1024" json:"note,omitempty"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

func LineTotal(unitPrice decimal.Decimal, amount int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(amount)))
}

// Recalculate 按当前 UnitPrice/Amount 重算 SubTotal
func (p *Product) Recalculate() { p.SubTotal = LineTotal(p.UnitPrice, p.Amount) }

// Filter 列表过滤；OwnerID 为空表示不限归属
type Filter struct {
	OwnerID    string
	CategoryID string
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, f Filter, offset, limit int) ([]Product, int64, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	// MarkPurchased 只更新尚未购买的行，返回实际更新数
	MarkPurchased(ctx context.Context, ids []string) (int64, error)
}
