package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/flowva/rewards-api/internal/config"
	"github.com/flowva/rewards-api/internal/domain/auth"
	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/domain/realtime"
	"github.com/flowva/rewards-api/internal/domain/referral"
	"github.com/flowva/rewards-api/internal/domain/reward"
	"github.com/flowva/rewards-api/internal/domain/spotlight"
	"github.com/flowva/rewards-api/internal/domain/streak"
	"github.com/flowva/rewards-api/internal/domain/user"
	"github.com/flowva/rewards-api/internal/middleware"
	"github.com/flowva/rewards-api/internal/pkg/clock"
	"github.com/flowva/rewards-api/internal/pkg/database"
	"github.com/flowva/rewards-api/internal/pkg/imaging"
	"github.com/flowva/rewards-api/internal/pkg/jwt"
	"github.com/flowva/rewards-api/internal/pkg/logger"
	"github.com/flowva/rewards-api/internal/pkg/metrics"
	"github.com/flowva/rewards-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Rewards API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	m := metrics.New("rewards")

	// ---------- WebSocket hub ----------
	hub := realtime.NewHub(redis, m)
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Repositories ----------
	ledgerRepo := ledger.NewRepository(db)
	userRepo := user.NewRepository(db)
	streakRepo := streak.NewRepository(db, ledgerRepo)
	rewardRepo := reward.NewRepository(db, ledgerRepo)
	spotlightRepo := spotlight.NewRepository(db, ledgerRepo)
	referralRepo := referral.NewRepository(db, ledgerRepo)

	// ---------- Services ----------
	ledgerService := ledger.NewService(ledgerRepo)
	defaultLoc := clock.LoadLocation(cfg.DefaultTimezone, time.UTC)
	streakService := streak.NewService(streakRepo, clock.Real{}, defaultLoc, hub, m)
	spotlightService := spotlight.NewService(spotlightRepo, hub, m)
	referralService := referral.NewService(referralRepo, userRepo, cfg.ReferralBaseURL, hub, m)

	rewardDeps := reward.Deps{
		Cache:     reward.NewRedisCache(redis, cfg.CatalogCacheTTL),
		Processor: imaging.NewProcessor(imaging.DefaultConfig()),
		Notifier:  hub,
		Metrics:   m,
	}
	if cfg.StorageEnabled() {
		s3, err := storage.NewS3Storage(context.Background(), storage.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 storage")
		}
		rewardDeps.Storage = s3
	} else {
		log.Warn().Msg("S3 credentials not configured, reward icon uploads disabled")
	}
	rewardService := reward.NewService(rewardRepo, ledgerService, rewardDeps)

	accountStore := auth.NewAccountStore(db, userRepo, streakRepo, ledgerRepo)
	authService := auth.NewService(userRepo, accountStore, referralService, jwtService, auth.NewRedisTokenStore(redis), m)

	// ---------- Rate limiting ----------
	var limiter *middleware.RateLimiter
	if redis != nil {
		limiter = middleware.NewRateLimiter(middleware.NewRedisCounter(redis))
	}

	a := &app{
		cfg:     cfg,
		db:      db,
		redis:   redis,
		jwt:     jwtService,
		metrics: m,
		limiter: limiter,
		handlers: handlers{
			auth:      auth.NewHandler(authService),
			points:    ledger.NewHandler(ledgerService),
			streak:    streak.NewHandler(streakService),
			rewards:   reward.NewHandler(rewardService),
			spotlight: spotlight.NewHandler(spotlightService),
			referrals: referral.NewHandler(referralService),
			ws:        realtime.NewHandler(hub, cfg.AllowedOrigins),
		},
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(a),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
