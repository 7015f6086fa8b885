package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"printshop-api/internal/domain"
)

// Store domain.Store 的 gorm 实现；事务内的 Store 共享同一个 *gorm.DB(tx)
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Users() domain.UserRepository          { return &UserRepo{db: s.db} }
func (s *Store) Addresses() domain.AddressRepository   { return &AddressRepo{db: s.db} }
func (s *Store) Categories() domain.CategoryRepository { return &CategoryRepo{db: s.db} }
func (s *Store) Products() domain.ProductRepository    { return &ProductRepo{db: s.db} }
func (s *Store) Files() domain.FileRepository          { return &FileRepo{db: s.db} }
func (s *Store) Orders() domain.OrderRepository        { return &OrderRepo{db: s.db} }
func (s *Store) Carts() domain.CartRepository          { return &CartRepo{db: s.db} }
func (s *Store) Payments() domain.PaymentRepository    { return &PaymentRepo{db: s.db} }

func (s *Store) Tx(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// first 查不到返回 (nil, nil)，由 service 决定是否 NotFound
func first[T any](q *gorm.DB, conds ...any) (*T, error) {
	var out T
	err := q.First(&out, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ownedBy 行级过滤谓词：ownerID 为空时不加条件
func ownedBy(ownerID string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if ownerID == "" {
			return q
		}
		return q.Where("user_id = ?", ownerID)
	}
}

// page 先 count 再取一页；q 需可复用（Session）
func page[T any](q *gorm.DB, offset, limit int, preload ...string) ([]T, int64, error) {
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]T, 0, limit)
	find := q
	for _, p := range preload {
		find = find.Preload(p)
	}
	if err := find.Order("created_at DESC").Order("id").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
