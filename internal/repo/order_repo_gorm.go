package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"printshop-api/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

// Create 先写订单行头，再批量写订单行；调用方负责包事务
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(o).Error; err != nil {
		return err
	}
	if len(o.Lines) == 0 {
		return nil
	}
	for i := range o.Lines {
		o.Lines[i].OrderID = o.ID
	}
	return db.Create(&o.Lines).Error
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return first[domain.Order](r.db.WithContext(ctx).Preload("Lines"), "id = ?", id)
}

func (r *OrderRepo) List(ctx context.Context, f domain.Filter, offset, limit int) ([]domain.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{}).Scopes(ownedBy(f.OwnerID))
	return page[domain.Order](q, offset, limit, "Lines")
}

func (r *OrderRepo) Update(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(o).Error
}

// Delete 订单与订单行一起硬删除
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Order{}).Error
	})
}
