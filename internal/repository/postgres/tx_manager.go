package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bagdasarian/team-registration/internal/repository"
)

type txManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *txManager {
	return &txManager{db: db}
}

// WithinTx открывает транзакцию на одном соединении из пула и отдает в fn репозитории, привязанные к ней.
// Rollback выполняется на любом выходе, кроме успешного Commit.
func (m *txManager) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	repos := repository.Repositories{
		Teams:    NewTeamRepositoryWithTx(tx),
		Payments: NewPaymentRepositoryWithTx(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
