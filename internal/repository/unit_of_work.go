package repository

import "context"

// Repositories - набор репозиториев, привязанных к одной транзакции
type Repositories struct {
	Teams    TeamRepository
	Payments PaymentRepository
}

// UnitOfWork выполняет fn в одной транзакции: commit, если fn вернула nil, иначе rollback
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
