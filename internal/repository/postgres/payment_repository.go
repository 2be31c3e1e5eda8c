package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bagdasarian/team-registration/internal/domain"
)

type paymentRepository struct {
	executor DBExecutor
}

func NewPaymentRepository(db *sql.DB) *paymentRepository {
	return &paymentRepository{executor: db}
}

func NewPaymentRepositoryWithTx(tx *sql.Tx) *paymentRepository {
	return &paymentRepository{executor: tx}
}

const selectPayments = `
	SELECT p.id, p.team_id, t.team_name, p.amount, p.payment_screenshot, p.payment_status, p.uploaded_at, p.created_at
	FROM payments p
	JOIN teams t ON p.team_id = t.id
`

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (team_id, amount, payment_screenshot, payment_status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, uploaded_at, created_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		payment.TeamID,
		payment.Amount,
		payment.ScreenshotRef,
		string(payment.Status),
	).Scan(&payment.ID, &payment.UploadedAt, &payment.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTeamNotFound
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// GetLatestByTeamID возвращает последний загруженный платеж команды или nil, если платежей нет
func (r *paymentRepository) GetLatestByTeamID(ctx context.Context, teamID int64) (*domain.Payment, error) {
	query := selectPayments + `
		WHERE p.team_id = $1
		ORDER BY p.uploaded_at DESC, p.id DESC
		LIMIT 1
	`

	payment, err := scanPayment(r.executor.QueryRowContext(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment for team %d: %w", teamID, err)
	}

	return payment, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]*domain.Payment, error) {
	query := selectPayments + `
		ORDER BY p.uploaded_at DESC, p.id DESC
	`

	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	payment := &domain.Payment{}
	var status string
	err := row.Scan(
		&payment.ID,
		&payment.TeamID,
		&payment.TeamName,
		&payment.Amount,
		&payment.ScreenshotRef,
		&status,
		&payment.UploadedAt,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	payment.Status = domain.PaymentStatus(status)
	return payment, nil
}
