package service

import (
	"context"

	"github.com/bagdasarian/team-registration/internal/domain"
)

type SubmitPaymentInput struct {
	TeamID     int64
	Screenshot string
	Amount     int64
}

type PaymentOptions struct {
	// RegistrationFee - ожидаемая сумма в рупиях; 0 отключает сравнение
	RegistrationFee    int64
	ScreenshotMaxBytes int64
	// RequireImage отклоняет скриншот, который не декодируется в изображение
	RequireImage bool
}

type PaymentService interface {
	Submit(ctx context.Context, input SubmitPaymentInput) (*domain.Payment, error)
	GetByTeam(ctx context.Context, teamID int64) (*domain.Payment, error)
	List(ctx context.Context) ([]*domain.Payment, error)
}
