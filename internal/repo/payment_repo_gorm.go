package repo

import (
	"context"

	"gorm.io/gorm"

	"printshop-api/internal/domain"
)

type PaymentRepo struct{ db *gorm.DB }

func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	return first[domain.Payment](r.db.WithContext(ctx), "order_id = ?", orderID)
}
