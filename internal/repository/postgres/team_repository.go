package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bagdasarian/team-registration/internal/domain"
)

type teamRepository struct {
	executor DBExecutor
}

func NewTeamRepository(db *sql.DB) *teamRepository {
	return &teamRepository{executor: db}
}

func NewTeamRepositoryWithTx(tx *sql.Tx) *teamRepository {
	return &teamRepository{executor: tx}
}

// Create вставляет строку команды; остальные колонки берут значения по умолчанию
func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	query := `
		INSERT INTO teams (team_name)
		VALUES ($1)
		RETURNING id, payment_completed, registration_status, created_at, updated_at
	`

	var status string
	err := r.executor.QueryRowContext(ctx, query, team.Name).Scan(
		&team.ID,
		&team.PaymentCompleted,
		&status,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	team.RegistrationStatus = domain.RegistrationStatus(status)

	return nil
}

func (r *teamRepository) AddMember(ctx context.Context, member *domain.TeamMember) error {
	query := `
		INSERT INTO team_members (team_id, name, registration_number, email, phone, is_leader)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		member.TeamID,
		member.Name,
		member.RegistrationNumber,
		member.Email,
		nullString(member.Phone),
		member.IsLeader,
	).Scan(&member.ID, &member.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTeamNotFound
		}
		return fmt.Errorf("failed to insert team member: %w", err)
	}

	return nil
}

func (r *teamRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var found int64
	err := r.executor.QueryRowContext(ctx, "SELECT id FROM teams WHERE id = $1", id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up team %d: %w", id, err)
	}
	return true, nil
}

func (r *teamRepository) MarkPaymentCompleted(ctx context.Context, id int64) error {
	query := `
		UPDATE teams
		SET payment_completed = TRUE, registration_status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, string(domain.StatusCompleted))
	if err != nil {
		return fmt.Errorf("failed to update team %d status: %w", id, err)
	}

	return checkAffectedRows(result, domain.ErrTeamNotFound)
}

// ListWithMembers возвращает все команды (новые сначала) с участниками: лидер первым, дальше в порядке регистрации
func (r *teamRepository) ListWithMembers(ctx context.Context) ([]*domain.Team, error) {
	query := `
		SELECT t.id, t.team_name, t.payment_completed, t.registration_status, t.created_at, t.updated_at,
		       tm.id, tm.name, tm.registration_number, tm.email, tm.phone, tm.is_leader, tm.created_at
		FROM teams t
		LEFT JOIN team_members tm ON tm.team_id = t.id
		ORDER BY t.created_at DESC, t.id DESC, tm.is_leader DESC, tm.id ASC
	`

	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	var current *domain.Team
	for rows.Next() {
		var (
			team     domain.Team
			status   string
			memberID sql.NullInt64
			name     sql.NullString
			regNo    sql.NullString
			email    sql.NullString
			phone    sql.NullString
			isLeader sql.NullBool
			joinedAt sql.NullTime
		)
		err := rows.Scan(
			&team.ID, &team.Name, &team.PaymentCompleted, &status, &team.CreatedAt, &team.UpdatedAt,
			&memberID, &name, &regNo, &email, &phone, &isLeader, &joinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}

		if current == nil || current.ID != team.ID {
			team.RegistrationStatus = domain.RegistrationStatus(status)
			team.Members = []domain.TeamMember{}
			current = &team
			teams = append(teams, current)
		}

		if !memberID.Valid {
			continue
		}
		current.Members = append(current.Members, domain.TeamMember{
			ID:                 memberID.Int64,
			TeamID:             current.ID,
			Name:               name.String,
			RegistrationNumber: regNo.String,
			Email:              email.String,
			Phone:              phone.String,
			IsLeader:           isLeader.Bool,
			CreatedAt:          joinedAt.Time,
		})
	}

	return teams, rows.Err()
}
