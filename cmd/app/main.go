package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bagdasarian/team-registration/internal/config"
	"github.com/bagdasarian/team-registration/internal/db"
	"github.com/bagdasarian/team-registration/internal/handler"
	"github.com/bagdasarian/team-registration/internal/handler/server"
	"github.com/bagdasarian/team-registration/internal/repository/postgres"
	"github.com/bagdasarian/team-registration/internal/service"
	"github.com/bagdasarian/team-registration/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.NewPostgres(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(ctx, database); err != nil {
		return err
	}
	logger.Info("schema is up to date")

	screenshots, err := storage.NewScreenshotStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("screenshot store initialized", slog.String("backend", cfg.Storage.Backend))

	teamRepo := postgres.NewTeamRepository(database)
	paymentRepo := postgres.NewPaymentRepository(database)
	txManager := postgres.NewTxManager(database)

	registrationService := service.NewRegistrationService(txManager, teamRepo)
	paymentService := service.NewPaymentService(txManager, teamRepo, paymentRepo, screenshots,
		service.PaymentOptions{
			RegistrationFee:    cfg.Payment.RegistrationFee,
			ScreenshotMaxBytes: cfg.Payment.ScreenshotMaxBytes,
			RequireImage:       cfg.Storage.Backend == config.ScreenshotStoreS3,
		},
		logger,
	)

	h := handler.NewHandler(registrationService, paymentService, database,
		handler.MaxBodyBytes(cfg.Payment.ScreenshotMaxBytes), logger)
	router := server.NewRouter(h, server.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminJWTSecret:     cfg.AdminJWTSecret,
	}, logger)
	if cfg.AdminJWTSecret == "" {
		logger.Warn("ADMIN_JWT_SECRET is not set, team and payment listings are public")
	}

	srv := server.NewServer(router, cfg.HTTPAddr, logger)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
