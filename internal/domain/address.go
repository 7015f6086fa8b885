package domain

import (
	"context"
	"time"
)

// Address 每个用户至多一条（user_id 唯一索引）
type Address struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"uniqueIndex;size:36;not null" json:"userId"`
	ReceiverName string    `gorm:"size:128;not null" json:"receiverName"`
	Address      string    `gorm:"size:512;not null" json:"address"`
	Phone        string    `gorm:"size:32;not null" json:"phone"`
	SubDistrict  string    `gorm:"size:128" json:"subDistrict,omitempty"`
	District     string    `gorm:"size:128" json:"district,omitempty"`
	Province     string    `gorm:"size:128" json:"province,omitempty"`
	Country      string    `gorm:"size:64;not null" json:"country"`
	PostalCode   string    `gorm:"size:16;not null" json:"postalCode"`
	TaxPayerID   string    `gorm:"size:32" json:"taxPayerId,omitempty"`
	TaxPayerName string    `gorm:"size:128" json:"taxPayerName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type AddressRepository interface {
	Create(ctx context.Context, a *Address) error
	FindByUserID(ctx context.Context, userID string) (*Address, error)
	Update(ctx context.Context, a *Address) error
	DeleteByUserID(ctx context.Context, userID string) error
}
