package service

import (
	"context"
	"strings"

	"github.com/bagdasarian/team-registration/internal/domain"
	"github.com/bagdasarian/team-registration/internal/repository"
)

type registrationService struct {
	uow      repository.UnitOfWork
	teamRepo repository.TeamRepository
}

// NewRegistrationService создает новый экземпляр RegistrationService
func NewRegistrationService(uow repository.UnitOfWork, teamRepo repository.TeamRepository) RegistrationService {
	return &registrationService{
		uow:      uow,
		teamRepo: teamRepo,
	}
}

// Register проверяет заявку и в одной транзакции создает команду, лидера и участников
func (s *registrationService) Register(ctx context.Context, input RegisterTeamInput) (*domain.Team, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	team := &domain.Team{Name: strings.TrimSpace(input.TeamName)}

	err := s.uow.WithinTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Teams.Create(ctx, team); err != nil {
			return err
		}

		members := make([]domain.TeamMember, 0, len(input.Members)+1)
		members = append(members, newTeamMember(team.ID, *input.Leader, true))
		for _, m := range input.Members {
			members = append(members, newTeamMember(team.ID, m, false))
		}

		for i := range members {
			if err := repos.Teams.AddMember(ctx, &members[i]); err != nil {
				return err
			}
		}

		team.Members = members
		return nil
	})
	if err != nil {
		return nil, err
	}

	return team, nil
}

// ListTeams возвращает все команды с участниками
func (s *registrationService) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	return s.teamRepo.ListWithMembers(ctx)
}

// validateRegistration проверяет только наличие полей; первая найденная ошибка возвращается сразу
func validateRegistration(input RegisterTeamInput) error {
	if isBlank(input.TeamName) || input.Leader == nil || (input.Members == nil && !input.MembersNotList) {
		return domain.ErrMissingFields
	}

	leader := input.Leader
	if isBlank(leader.Name) || isBlank(leader.RegistrationNumber) || isBlank(leader.Email) || isBlank(leader.Phone) {
		return domain.ErrMissingLeaderInfo
	}

	if input.MembersNotList || len(input.Members) < domain.MinAdditionalMembers || len(input.Members) > domain.MaxAdditionalMembers {
		return domain.ErrInvalidTeamSize
	}

	for _, m := range input.Members {
		if isBlank(m.Name) || isBlank(m.RegistrationNumber) || isBlank(m.Email) {
			return domain.ErrMissingMemberInfo
		}
	}

	return nil
}

func newTeamMember(teamID int64, in MemberInput, isLeader bool) domain.TeamMember {
	return domain.TeamMember{
		TeamID:             teamID,
		Name:               strings.TrimSpace(in.Name),
		RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
		Email:              strings.TrimSpace(in.Email),
		Phone:              strings.TrimSpace(in.Phone),
		IsLeader:           isLeader,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
