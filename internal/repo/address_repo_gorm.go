package repo

import (
	"context"

	"gorm.io/gorm"

	"printshop-api/internal/domain"
)

type AddressRepo struct{ db *gorm.DB }

func (r *AddressRepo) Create(ctx context.Context, a *domain.Address) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AddressRepo) FindByUserID(ctx context.Context, userID string) (*domain.Address, error) {
	return first[domain.Address](r.db.WithContext(ctx), "user_id = ?", userID)
}

func (r *AddressRepo) Update(ctx context.Context, a *domain.Address) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AddressRepo) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Address{}).Error
}
