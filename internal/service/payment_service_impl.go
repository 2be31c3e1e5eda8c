package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bagdasarian/team-registration/internal/domain"
	"github.com/bagdasarian/team-registration/internal/repository"
	"github.com/bagdasarian/team-registration/internal/storage"
)

type paymentService struct {
	uow         repository.UnitOfWork
	teamRepo    repository.TeamRepository
	paymentRepo repository.PaymentRepository
	screenshots storage.ScreenshotStore
	opts        PaymentOptions
	logger      *slog.Logger
}

// NewPaymentService создает новый экземпляр PaymentService
func NewPaymentService(
	uow repository.UnitOfWork,
	teamRepo repository.TeamRepository,
	paymentRepo repository.PaymentRepository,
	screenshots storage.ScreenshotStore,
	opts PaymentOptions,
	logger *slog.Logger,
) PaymentService {
	return &paymentService{
		uow:         uow,
		teamRepo:    teamRepo,
		paymentRepo: paymentRepo,
		screenshots: screenshots,
		opts:        opts,
		logger:      logger,
	}
}

// Submit сохраняет скриншот, затем в одной транзакции пишет платеж и переводит команду в completed.
// Повторная отправка создает еще одну запись о платеже.
func (s *paymentService) Submit(ctx context.Context, input SubmitPaymentInput) (*domain.Payment, error) {
	if input.TeamID == 0 || isBlank(input.Screenshot) || input.Amount == 0 {
		return nil, domain.ErrMissingFields
	}

	exists, err := s.teamRepo.Exists(ctx, input.TeamID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrTeamNotFound
	}

	if err := s.validateAmount(input.Amount); err != nil {
		return nil, err
	}

	shot, err := s.decodeScreenshot(input.Screenshot)
	if err != nil {
		return nil, err
	}

	ref, err := s.screenshots.Save(ctx, input.TeamID, shot)
	if err != nil {
		return nil, fmt.Errorf("failed to store payment screenshot: %w", err)
	}

	payment := &domain.Payment{
		TeamID:        input.TeamID,
		Amount:        input.Amount,
		ScreenshotRef: ref,
		Status:        domain.PaymentStatusUploaded,
	}

	err = s.uow.WithinTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return err
		}
		return repos.Teams.MarkPaymentCompleted(ctx, input.TeamID)
	})
	if err != nil {
		s.discardScreenshot(ctx, ref)
		return nil, err
	}

	payment.ScreenshotURL = s.screenshots.PublicURL(ref)
	return payment, nil
}

// GetByTeam возвращает последний платеж команды; nil без ошибки, если платежа нет
func (s *paymentService) GetByTeam(ctx context.Context, teamID int64) (*domain.Payment, error) {
	if teamID <= 0 {
		return nil, domain.ErrInvalidTeamID
	}

	payment, err := s.paymentRepo.GetLatestByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if payment != nil {
		payment.ScreenshotURL = s.screenshots.PublicURL(payment.ScreenshotRef)
	}

	return payment, nil
}

// List возвращает все платежи, новые сначала
func (s *paymentService) List(ctx context.Context) ([]*domain.Payment, error) {
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range payments {
		p.ScreenshotURL = s.screenshots.PublicURL(p.ScreenshotRef)
	}

	return payments, nil
}

func (s *paymentService) validateAmount(amount int64) error {
	if amount < 0 {
		return domain.NewInvalidAmountError("must be positive")
	}
	if s.opts.RegistrationFee > 0 && amount != s.opts.RegistrationFee {
		return domain.NewInvalidAmountError(fmt.Sprintf("registration fee is %d", s.opts.RegistrationFee))
	}
	return nil
}

// decodeScreenshot требует изображение только при RequireImage; иначе строка сохраняется как есть
func (s *paymentService) decodeScreenshot(raw string) (*storage.Screenshot, error) {
	shot, err := storage.DecodeScreenshot(raw, s.opts.ScreenshotMaxBytes)
	if err == nil {
		return shot, nil
	}
	if s.opts.RequireImage {
		return nil, err
	}
	return storage.OpaqueScreenshot(raw), nil
}

// discardScreenshot удаляет уже загруженный файл, если транзакция не прошла
func (s *paymentService) discardScreenshot(ctx context.Context, ref string) {
	if err := s.screenshots.Delete(context.WithoutCancel(ctx), ref); err != nil {
		s.logger.Warn("failed to delete orphaned payment screenshot",
			slog.String("ref", truncateRef(ref)),
			slog.Any("error", err),
		)
	}
}

// truncateRef не дает data URL целиком попасть в лог
func truncateRef(ref string) string {
	const limit = 64
	if len(ref) <= limit {
		return ref
	}
	return ref[:limit] + "..."
}
