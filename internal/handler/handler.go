package handler

import (
	"context"
	"log/slog"

	"github.com/bagdasarian/team-registration/internal/service"
)

// Pinger - то, что умеет проверить соединение с БД (*sql.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	registrationService service.RegistrationService
	paymentService      service.PaymentService
	db                  Pinger
	maxBodyBytes        int64
	logger              *slog.Logger
}

func NewHandler(
	registrationService service.RegistrationService,
	paymentService service.PaymentService,
	db Pinger,
	maxBodyBytes int64,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		registrationService: registrationService,
		paymentService:      paymentService,
		db:                  db,
		maxBodyBytes:        maxBodyBytes,
		logger:              logger,
	}
}

// MaxBodyBytes считает лимит тела запроса: base64 раздувает скриншот на треть, плюс запас на остальные поля
func MaxBodyBytes(screenshotMaxBytes int64) int64 {
	return screenshotMaxBytes*4/3 + 64<<10
}
