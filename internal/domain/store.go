package domain

import "context"

// Store 聚合所有仓储；Tx 内传入的 Store 绑定同一事务，fn 返回错误即回滚
type Store interface {
	Users() UserRepository
	Addresses() AddressRepository
	Categories() CategoryRepository
	Products() ProductRepository
	Files() FileRepository
	Orders() OrderRepository
	Carts() CartRepository
	Payments() PaymentRepository

	Tx(ctx context.Context, fn func(tx Store) error) error
}

// Models AutoMigrate 用
func Models() []any {
	return []any{
		&User{}, &Address{}, &ProductCategory{}, &Product{}, &File{},
		&Order{}, &OrderLine{}, &Cart{}, &Payment{},
	}
}
