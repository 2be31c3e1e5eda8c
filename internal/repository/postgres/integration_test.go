//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"

	"github.com/bagdasarian/team-registration/internal/config"
	"github.com/bagdasarian/team-registration/internal/db"
	"github.com/bagdasarian/team-registration/internal/domain"
	"github.com/bagdasarian/team-registration/internal/repository/postgres"
	"github.com/bagdasarian/team-registration/internal/service"
	"github.com/bagdasarian/team-registration/internal/storage"
)

const pngDataURL = "data:image/png;base64,iVBORw0KGgoAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

func setupTestDB(t *testing.T) *sql.DB {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:17.7",
		tcpostgres.WithDatabase("test_db"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := &config.Config{Database: config.DatabaseConfig{
		URL:             connStr,
		MaxOpenConns:    10,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Minute,
		ConnectTimeout:  10 * time.Second,
	}}
	database, err := db.NewPostgres(cfg)
	require.NoError(t, err)

	require.NoError(t, db.Migrate(ctx, database))

	t.Cleanup(func() {
		database.Close()
		require.NoError(t, container.Terminate(ctx))
	})

	return database
}

type services struct {
	registration service.RegistrationService
	payment      service.PaymentService
}

func newServices(database *sql.DB, fee int64) services {
	teamRepo := postgres.NewTeamRepository(database)
	paymentRepo := postgres.NewPaymentRepository(database)
	txManager := postgres.NewTxManager(database)

	return services{
		registration: service.NewRegistrationService(txManager, teamRepo),
		payment: service.NewPaymentService(txManager, teamRepo, paymentRepo, storage.NewInlineStore(),
			service.PaymentOptions{RegistrationFee: fee, ScreenshotMaxBytes: 5 << 20},
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		),
	}
}

func registration(teamName string, members int) service.RegisterTeamInput {
	input := service.RegisterTeamInput{
		TeamName: teamName,
		Leader:   &service.MemberInput{Name: "Lead", RegistrationNumber: "21X0", Email: "lead@x.com", Phone: "+910000000000"},
		Members:  []service.MemberInput{},
	}
	for i := 0; i < members; i++ {
		input.Members = append(input.Members, service.MemberInput{
			Name:               "Member " + string(rune('A'+i)),
			RegistrationNumber: "21X" + string(rune('1'+i)),
			Email:              "m" + string(rune('a'+i)) + "@x.com",
		})
	}
	return input
}

func count(t *testing.T, database *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(query, args...).Scan(&n))
	return n
}

func TestIntegration_Migrate(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	t.Run("повторный и параллельный запуск миграций безопасен", func(t *testing.T) {
		g, gCtx := errgroup.WithContext(ctx)
		for i := 0; i < 3; i++ {
			g.Go(func() error { return db.Migrate(gCtx, database) })
		}
		require.NoError(t, g.Wait())

		assert.Equal(t, 1, count(t, database, `SELECT COUNT(*) FROM schema_migrations`))
	})
}

func TestIntegration_Registration(t *testing.T) {
	database := setupTestDB(t)
	svc := newServices(database, 349)
	ctx := context.Background()

	t.Run("команда сохраняется с лидером и участниками", func(t *testing.T) {
		team, err := svc.registration.Register(ctx, registration("Alpha", 3))
		require.NoError(t, err)

		assert.Equal(t, 4, count(t, database, `SELECT COUNT(*) FROM team_members WHERE team_id = $1`, team.ID))
		assert.Equal(t, 1, count(t, database, `SELECT COUNT(*) FROM team_members WHERE team_id = $1 AND is_leader`, team.ID))

		var status string
		var paid bool
		require.NoError(t, database.QueryRow(
			`SELECT registration_status, payment_completed FROM teams WHERE id = $1`, team.ID,
		).Scan(&status, &paid))
		assert.Equal(t, string(domain.StatusPendingPayment), status)
		assert.False(t, paid)
	})

	t.Run("сбой на участнике откатывает всю регистрацию", func(t *testing.T) {
		teamsBefore := count(t, database, `SELECT COUNT(*) FROM teams`)
		membersBefore := count(t, database, `SELECT COUNT(*) FROM team_members`)

		input := registration("Broken", 3)
		input.Members[1].RegistrationNumber = strings.Repeat("9", 51)

		team, err := svc.registration.Register(ctx, input)

		require.Error(t, err)
		assert.Nil(t, team)
		assert.Equal(t, teamsBefore, count(t, database, `SELECT COUNT(*) FROM teams`))
		assert.Equal(t, membersBefore, count(t, database, `SELECT COUNT(*) FROM team_members`))
	})

	t.Run("список: новые команды первыми, лидер первым", func(t *testing.T) {
		_, err := svc.registration.Register(ctx, registration("Beta", 4))
		require.NoError(t, err)

		teams, err := svc.registration.ListTeams(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(teams), 2)

		assert.Equal(t, "Beta", teams[0].Name)
		require.Len(t, teams[0].Members, 5)
		assert.True(t, teams[0].Members[0].IsLeader)
		assert.Equal(t, "+910000000000", teams[0].Members[0].Phone)
		assert.Equal(t, "Member A", teams[0].Members[1].Name)
		assert.Empty(t, teams[0].Members[1].Phone)
	})
}

func TestIntegration_Payment(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	t.Run("оплата завершает регистрацию", func(t *testing.T) {
		svc := newServices(database, 349)
		team, err := svc.registration.Register(ctx, registration("Gamma", 3))
		require.NoError(t, err)

		payment, err := svc.payment.Submit(ctx, service.SubmitPaymentInput{TeamID: team.ID, Screenshot: pngDataURL, Amount: 349})
		require.NoError(t, err)
		assert.NotZero(t, payment.ID)

		var status string
		var paid bool
		require.NoError(t, database.QueryRow(
			`SELECT registration_status, payment_completed FROM teams WHERE id = $1`, team.ID,
		).Scan(&status, &paid))
		assert.Equal(t, string(domain.StatusCompleted), status)
		assert.True(t, paid)

		latest, err := svc.payment.GetByTeam(ctx, team.ID)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, payment.ID, latest.ID)
		assert.Equal(t, "Gamma", latest.TeamName)
		assert.Equal(t, domain.PaymentStatusUploaded, latest.Status)
	})

	t.Run("повторная оплата: последний платеж возвращается первым", func(t *testing.T) {
		svc := newServices(database, 349)
		team, err := svc.registration.Register(ctx, registration("Delta", 3))
		require.NoError(t, err)

		_, err = svc.payment.Submit(ctx, service.SubmitPaymentInput{TeamID: team.ID, Screenshot: pngDataURL, Amount: 349})
		require.NoError(t, err)
		second, err := svc.payment.Submit(ctx, service.SubmitPaymentInput{TeamID: team.ID, Screenshot: pngDataURL, Amount: 349})
		require.NoError(t, err)

		latest, err := svc.payment.GetByTeam(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, latest.ID)

		all, err := svc.payment.List(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, all)
		assert.Equal(t, second.ID, all[0].ID)
	})

	t.Run("несуществующая команда - 404 и ничего не записано", func(t *testing.T) {
		svc := newServices(database, 349)
		before := count(t, database, `SELECT COUNT(*) FROM payments`)

		_, err := svc.payment.Submit(ctx, service.SubmitPaymentInput{TeamID: 999999, Screenshot: "screenshot-blob", Amount: 100})

		assert.ErrorIs(t, err, domain.ErrTeamNotFound)
		assert.Equal(t, before, count(t, database, `SELECT COUNT(*) FROM payments`))
	})

	t.Run("сбой вставки платежа оставляет команду неоплаченной", func(t *testing.T) {
		svc := newServices(database, 0)
		team, err := svc.registration.Register(ctx, registration("Epsilon", 3))
		require.NoError(t, err)

		_, err = svc.payment.Submit(ctx, service.SubmitPaymentInput{TeamID: team.ID, Screenshot: pngDataURL, Amount: 3_000_000_000})
		require.Error(t, err)

		assert.Equal(t, 0, count(t, database, `SELECT COUNT(*) FROM payments WHERE team_id = $1`, team.ID))
		assert.Equal(t, 0, count(t, database, `SELECT COUNT(*) FROM teams WHERE id = $1 AND payment_completed`, team.ID))
	})

	t.Run("команда без платежа - nil", func(t *testing.T) {
		svc := newServices(database, 349)
		team, err := svc.registration.Register(ctx, registration("Zeta", 3))
		require.NoError(t, err)

		payment, err := svc.payment.GetByTeam(ctx, team.ID)
		require.NoError(t, err)
		assert.Nil(t, payment)
	})
}
