package domain

import (
	"context"
	"time"
)

type ProductCategory struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryRepository interface {
	Create(ctx context.Context, c *ProductCategory) error
	FindByID(ctx context.Context, id string) (*ProductCategory, error)
	List(ctx context.Context, offset, limit int) ([]ProductCategory, int64, error)
	Update(ctx context.Context, c *ProductCategory) error
	Delete(ctx context.Context, id string) error
}
