package service

import (
	"context"

	"github.com/bagdasarian/team-registration/internal/domain"
)

type MemberInput struct {
	Name               string
	RegistrationNumber string
	Email              string
	Phone              string
}

type RegisterTeamInput struct {
	TeamName string
	// Leader == nil означает, что поле не передано
	Leader *MemberInput
	// Members == nil означает, что поле не передано; пустой срез - передан пустой список
	Members []MemberInput
	// MembersNotList - members передан, но это не массив
	MembersNotList bool
}

type RegistrationService interface {
	Register(ctx context.Context, input RegisterTeamInput) (*domain.Team, error)
	ListTeams(ctx context.Context) ([]*domain.Team, error)
}
