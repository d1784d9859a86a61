package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/flowva/rewards-api/internal/config"
	"github.com/flowva/rewards-api/internal/domain/auth"
	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/domain/realtime"
	"github.com/flowva/rewards-api/internal/domain/referral"
	"github.com/flowva/rewards-api/internal/domain/reward"
	"github.com/flowva/rewards-api/internal/domain/spotlight"
	"github.com/flowva/rewards-api/internal/domain/streak"
	"github.com/flowva/rewards-api/internal/middleware"
	"github.com/flowva/rewards-api/internal/pkg/database"
	"github.com/flowva/rewards-api/internal/pkg/jwt"
	"github.com/flowva/rewards-api/internal/pkg/metrics"
	pkgresponse "github.com/flowva/rewards-api/internal/pkg/response"
)

const requestTimeout = 30 * time.Second

type handlers struct {
	auth      *auth.Handler
	points    *ledger.Handler
	streak    *streak.Handler
	rewards   *reward.Handler
	spotlight *spotlight.Handler
	referrals *referral.Handler
	ws        *realtime.Handler
}

type app struct {
	cfg      *config.Config
	db       *sqlx.DB
	redis    *redis.Client
	jwt      *jwt.Service
	metrics  *metrics.Metrics
	limiter  *middleware.RateLimiter
	handlers handlers
}

func newRouter(a *app) http.Handler {
	authMiddleware := middleware.Auth(a.jwt)
	claimLimit := a.limiter.Limit("claim", a.cfg.RateLimitClaimsPerMinute, time.Minute)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(a.cfg.AllowedOrigins))
	r.Use(a.metrics.Middleware)

	// WebSocket endpoint; the access token arrives as ?token=
	r.With(authMiddleware).Get("/ws", a.handlers.ws.WebSocket)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := database.Health(r.Context(), a.db, a.redis)
		for _, s := range status {
			if s == "down" {
				pkgresponse.JSON(w, http.StatusServiceUnavailable, status)
				return
			}
		}
		pkgresponse.OK(w, status)
	})
	r.Handle("/metrics", a.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))

		r.Mount("/auth", a.handlers.auth.Routes(authMiddleware))
		r.Mount("/points", a.handlers.points.Routes(authMiddleware))
		r.Mount("/streak", a.handlers.streak.Routes(authMiddleware, claimLimit))
		r.Mount("/rewards", a.handlers.rewards.Routes(authMiddleware))
		r.Mount("/spotlight", a.handlers.spotlight.Routes(authMiddleware, claimLimit))
		r.Mount("/referrals", a.handlers.referrals.Routes(authMiddleware))

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RequireAdmin())
			r.Mount("/rewards", a.handlers.rewards.AdminRoutes())
			r.Mount("/spotlight", a.handlers.spotlight.AdminRoutes())
		})
	})

	return r
}
