package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"printshop-api/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return first[domain.Product](r.db.WithContext(ctx).Preload("Category"), "id = ?", id)
}

func (r *ProductRepo) List(ctx context.Context, f domain.Filter, offset, limit int) ([]domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{}).Scopes(ownedBy(f.OwnerID))
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	return page[domain.Product](q, offset, limit, "Category")
}

// Update 整行保存，不级联写 Category
func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
}

func (r *ProductRepo) MarkPurchased(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id IN ? AND is_purchased = ?", ids, false).
		Update("is_purchased", true)
	return res.RowsAffected, res.Error
}
