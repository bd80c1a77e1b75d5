package app

import (
	"net/http"

	"github.com/conectanegocios/conecta/internal/admin"
	"github.com/conectanegocios/conecta/internal/apperrors"
	"github.com/conectanegocios/conecta/internal/config"
	"github.com/conectanegocios/conecta/internal/intentions"
	"github.com/conectanegocios/conecta/internal/members"
	"github.com/conectanegocios/conecta/internal/notify"
	"github.com/conectanegocios/conecta/internal/referrals"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRouter creates and configures the Chi router with all middleware and routes
func NewRouter(pool *pgxpool.Pool, cfg *config.Config, notifier notify.Notifier) *chi.Mux {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RealIP)
	r.Use(apperrors.RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.BaseURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", admin.AdminKeyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	intentionService := intentions.NewService(pool, cfg.BaseURL, notifier)
	memberService := members.NewService(pool)
	referralService := referrals.NewService(pool)
	requireAdmin := admin.RequireAdmin(cfg)

	// Health check routes (no authentication required)
	r.Get("/healthz", handleHealthz)
	r.Get("/readyz", handleReadyz(pool))

	// Intentions: public submission, admin-gated review
	r.Route("/intentions", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(SubmitRateLimitMiddleware(cfg.RateLimitRPM)).Post("/", intentions.HandleSubmit(intentionService))
		r.With(requireAdmin).Get("/", intentions.HandleList(intentionService))
		r.With(requireAdmin).Patch("/{id}", intentions.HandleDecide(intentionService))
	})

	// Members: registration completion, token inspection, login, admin listing
	r.Route("/members", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", members.HandleComplete(memberService))
		r.Get("/", members.HandleLookup(memberService, requireAdmin))
		r.Get("/{token}", members.HandleInspectToken(memberService))
	})

	// Referrals: member-driven, no admin gate
	r.Route("/referrals", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", referrals.HandleCreate(referralService))
		r.Get("/", referrals.HandleList(referralService))
		r.Patch("/{id}", referrals.HandleSetStatus(referralService))
	})

	// Admin authentication
	r.Route("/admin", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(SubmitRateLimitMiddleware(cfg.RateLimitRPM)).Post("/auth", admin.HandleAuth(cfg))
	})

	return r
}

// handleHealthz returns a simple liveness check
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteSuccess(w, r, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// handleReadyz returns a readiness check that includes database connectivity
func handleReadyz(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			apperrors.WriteServiceUnavailable(w, r, "Database connection failed")
			return
		}

		apperrors.WriteSuccess(w, r, http.StatusOK, map[string]string{
			"status": "ready",
			"db":     "ok",
		})
	}
}
