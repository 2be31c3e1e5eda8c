package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bagdasarian/team-registration/internal/handler"
	"github.com/bagdasarian/team-registration/internal/middleware"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	AdminJWTSecret     string
}

func NewRouter(h *handler.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	adminOnly := middleware.AdminAuth(cfg.AdminJWTSecret)

	r.Get("/health", h.Health)

	r.Post("/register", h.RegisterTeam)
	r.With(adminOnly).Get("/register", h.ListTeams)

	r.Post("/payment", h.SubmitPayment)
	r.Get("/payment", withQueryParam(handler.TeamIDParam,
		http.HandlerFunc(h.GetTeamPayment),
		adminOnly(http.HandlerFunc(h.ListPayments)),
	))

	return r
}

// withQueryParam выбирает обработчик по наличию непустого query-параметра
func withQueryParam(param string, with, without http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(param) != "" {
			with.ServeHTTP(w, r)
			return
		}
		without.ServeHTTP(w, r)
	}
}
