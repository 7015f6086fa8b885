package domain

import (
	"context"
	"time"
)

// File 上传到对象存储的设计稿；未购买的文件超过保留期会被清理
type File struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"index;size:36;not null" json:"userId"`
	ProductID   string    `gorm:"index;size:36;not null" json:"productId"`
	CategoryID  string    `gorm:"size:36" json:"categoryId"`
	Key         string    `gorm:"size:512;not null" json:"key"`
	Type        string    `gorm:"size:128" json:"type"`
	Size        int64     `json:"size"`
	IsPurchased bool      `gorm:"index;not null;default:false" json:"isPurchased"`
	DisplayName string    `gorm:"size:255" json:"displayName"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type FileRepository interface {
	Create(ctx context.Context, f *File) error
	FindByID(ctx context.Context, id string) (*File, error)
	ListByProduct(ctx context.Context, productID string) ([]File, error)
	ListUnpurchasedBefore(ctx context.Context, before time.Time, limit int) ([]File, error)
	Update(ctx context.Context, f *File) error
	Delete(ctx context.Context, id string) error
	MarkPurchasedByProducts(ctx context.Context, productIDs []string) error
}
