package domain

import "time"

type RegistrationStatus string

const (
	StatusPendingPayment RegistrationStatus = "pending_payment"
	StatusCompleted      RegistrationStatus = "completed"
)

const (
	// MinAdditionalMembers и MaxAdditionalMembers считаются без лидера
	MinAdditionalMembers = 3
	MaxAdditionalMembers = 4
)

type Team struct {
	ID                 int64
	Name               string
	PaymentCompleted   bool
	RegistrationStatus RegistrationStatus
	Members            []TeamMember
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type TeamMember struct {
	ID                 int64
	TeamID             int64
	Name               string
	RegistrationNumber string
	Email              string
	Phone              string
	IsLeader           bool
	CreatedAt          time.Time
}
