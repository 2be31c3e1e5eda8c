package handler

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/bagdasarian/team-registration/internal/domain"
	"github.com/bagdasarian/team-registration/internal/service"
)

const (
	memberFieldName               = "name"
	memberFieldRegistrationNumber = "registrationNumber"
	memberFieldEmail              = "email"
	memberFieldPhone              = "phone"
)

func httpRegisterToInput(req RegisterRequest) service.RegisterTeamInput {
	input := service.RegisterTeamInput{TeamName: looseString(req.TeamName)}

	if !isFalsyJSON(req.Leader) {
		leader := httpMemberToInput(req.Leader)
		input.Leader = &leader
	}

	if !isFalsyJSON(req.Members) {
		var items []json.RawMessage
		if err := json.Unmarshal(req.Members, &items); err != nil {
			input.MembersNotList = true
			return input
		}

		input.Members = make([]service.MemberInput, 0, len(items))
		for _, item := range items {
			input.Members = append(input.Members, httpMemberToInput(item))
		}
	}

	return input
}

// httpMemberToInput берет строковые поля участника; не-объект дает пустого участника
func httpMemberToInput(raw json.RawMessage) service.MemberInput {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return service.MemberInput{}
	}

	return service.MemberInput{
		Name:               looseString(fields[memberFieldName]),
		RegistrationNumber: looseString(fields[memberFieldRegistrationNumber]),
		Email:              looseString(fields[memberFieldEmail]),
		Phone:              looseString(fields[memberFieldPhone]),
	}
}

// isFalsyJSON - поле отсутствует или равно null, false, 0, ""
func isFalsyJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "", "null", "false", `""`:
		return true
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return f == 0
	}
	return false
}

// looseString отдает строку как есть, ненулевые числа и true - текстом, все остальное - ""
func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if isFalsyJSON(raw) {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[':
		return ""
	default:
		return string(raw)
	}
}

func httpPaymentToInput(req PaymentRequest) service.SubmitPaymentInput {
	return service.SubmitPaymentInput{
		TeamID:     int64(req.TeamID),
		Screenshot: req.PaymentScreenshot,
		Amount:     req.Amount,
	}
}

func domainTeamToHTTP(team *domain.Team) TeamResponse {
	members := make([]TeamMemberResponse, 0, len(team.Members))
	for _, member := range team.Members {
		var phone *string
		if member.Phone != "" {
			p := member.Phone
			phone = &p
		}
		members = append(members, TeamMemberResponse{
			Name:               member.Name,
			RegistrationNumber: member.RegistrationNumber,
			Email:              member.Email,
			Phone:              phone,
			IsLeader:           member.IsLeader,
		})
	}

	return TeamResponse{
		ID:                 team.ID,
		TeamName:           team.Name,
		CreatedAt:          team.CreatedAt,
		PaymentCompleted:   team.PaymentCompleted,
		RegistrationStatus: string(team.RegistrationStatus),
		Members:            members,
	}
}

func domainTeamsToHTTP(teams []*domain.Team) []TeamResponse {
	result := make([]TeamResponse, 0, len(teams))
	for _, team := range teams {
		result = append(result, domainTeamToHTTP(team))
	}
	return result
}

func domainPaymentToHTTP(payment *domain.Payment) PaymentView {
	return PaymentView{
		ID:            payment.ID,
		TeamID:        payment.TeamID,
		TeamName:      payment.TeamName,
		Amount:        payment.Amount,
		PaymentStatus: string(payment.Status),
		UploadedAt:    payment.UploadedAt,
		ScreenshotURL: payment.ScreenshotURL,
	}
}

func domainPaymentsToHTTP(payments []*domain.Payment) []PaymentView {
	result := make([]PaymentView, 0, len(payments))
	for _, payment := range payments {
		result = append(result, domainPaymentToHTTP(payment))
	}
	return result
}
