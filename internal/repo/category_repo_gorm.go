package repo

import (
	"context"

	"gorm.io/gorm"

	"printshop-api/internal/domain"
)

type CategoryRepo struct{ db *gorm.DB }

func (r *CategoryRepo) Create(ctx context.Context, c *domain.ProductCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*domain.ProductCategory, error) {
	return first[domain.ProductCategory](r.db.WithContext(ctx), "id = ?", id)
}

func (r *CategoryRepo) List(ctx context.Context, offset, limit int) ([]domain.ProductCategory, int64, error) {
	return page[domain.ProductCategory](r.db.WithContext(ctx).Model(&domain.ProductCategory{}), offset, limit)
}

func (r *CategoryRepo) Update(ctx context.Context, c *domain.ProductCategory) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ProductCategory{}).Error
}
