package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"printshop-api/internal/domain"
)

type CartRepo struct{ db *gorm.DB }

func (r *CartRepo) Create(ctx context.Context, c *domain.Cart) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *CartRepo) FindByID(ctx context.Context, id string) (*domain.Cart, error) {
	return first[domain.Cart](r.db.WithContext(ctx).Preload("Product"), "id = ?", id)
}

func (r *CartRepo) List(ctx context.Context, f domain.Filter, offset, limit int) ([]domain.Cart, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Cart{}).Scopes(ownedBy(f.OwnerID))
	return page[domain.Cart](q, offset, limit, "Product")
}

func (r *CartRepo) Update(ctx context.Context, c *domain.Cart) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *CartRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Cart{}).Error
}
