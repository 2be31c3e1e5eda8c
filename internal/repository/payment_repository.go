package repository

import (
	"context"

	"github.com/bagdasarian/team-registration/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetLatestByTeamID(ctx context.Context, teamID int64) (*domain.Payment, error)
	List(ctx context.Context) ([]*domain.Payment, error)
}
