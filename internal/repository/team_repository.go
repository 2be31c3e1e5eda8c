package repository

import (
	"context"

	"github.com/bagdasarian/team-registration/internal/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	AddMember(ctx context.Context, member *domain.TeamMember) error
	Exists(ctx context.Context, id int64) (bool, error)
	MarkPaymentCompleted(ctx context.Context, id int64) error
	ListWithMembers(ctx context.Context) ([]*domain.Team, error)
}
