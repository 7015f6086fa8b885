package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"printshop-api/internal/domain"
)

type FileRepo struct{ db *gorm.DB }

func (r *FileRepo) Create(ctx context.Context, f *domain.File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FileRepo) FindByID(ctx context.Context, id string) (*domain.File, error) {
	return first[domain.File](r.db.WithContext(ctx), "id = ?", id)
}

func (r *FileRepo) ListByProduct(ctx context.Context, productID string) ([]domain.File, error) {
	var out []domain.File
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at").
		Find(&out).Error
	return out, err
}

// ListUnpurchasedBefore 清理任务候选：未购买且创建早于 before
func (r *FileRepo) ListUnpurchasedBefore(ctx context.Context, before time.Time, limit int) ([]domain.File, error) {
	var out []domain.File
	err := r.db.WithContext(ctx).
		Where("is_purchased = ? AND created_at < ?", false, before).
		Order("created_at").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *FileRepo) Update(ctx context.Context, f *domain.File) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FileRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.File{}).Error
}

func (r *FileRepo) MarkPurchasedByProducts(ctx context.Context, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.File{}).
		Where("product_id IN ?", productIDs).
		Update("is_purchased", true).Error
}
