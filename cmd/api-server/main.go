package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"comboshare/database"
	"comboshare/internal/cache"
	"comboshare/internal/config"
	"comboshare/internal/logging"
	"comboshare/internal/metrics"
	"comboshare/internal/microservices/http-api/handler"
	"comboshare/internal/microservices/http-api/middleware"
	"comboshare/internal/microservices/http-api/repository"
	"comboshare/internal/microservices/http-api/service"
	"comboshare/internal/validation"
)

const (
	sessionSweepInterval = time.Hour
	limiterSweepInterval = 10 * time.Minute
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validation.RegisterBindings(); err != nil {
		logging.Fatal().Err(err).Msg("failed to register validators")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database
	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		logging.Fatal().Err(err).Msg("migrations failed")
	}
	db, err := database.Connect(ctx, cfg.DatabaseURL, cfg.IsDevelopment() && cfg.LogLevel == "debug")
	if err != nil {
		logging.Fatal().Err(err).Msg("database connection failed")
	}
	defer database.Close(db)

	// 3. Cache
	rdb, err := cache.New(cfg.RedisURL, cfg.RedisPassword, cfg.CacheExpiry())
	if err != nil {
		logging.Warn().Err(err).Msg("redis unavailable, running without cache")
		rdb, _ = cache.New("", "", 0)
	}
	defer rdb.Close()
	// seed migrations may have changed the catalog
	if err := rdb.DeletePrefix(ctx, ""); err != nil {
		logging.Warn().Err(err).Msg("failed to reset cache")
	}

	r, sessions, err := buildRouter(ctx, cfg, db, rdb)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build router")
	}

	go sweepSessions(ctx, sessions)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Str("env", cfg.GoEnv).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildRouter wires repositories, services and handlers onto a gin engine. Background sweeps stop with ctx.
func buildRouter(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *cache.Cache) (*gin.Engine, repository.SessionRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql.DB: %w", err)
	}
	handler.RequestTimeout = cfg.RequestTimeout

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	comboRepo := repository.NewComboRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, sessionRepo, cfg)
	comboService := service.NewComboService(comboRepo, catalogRepo, ratingRepo, favoriteRepo, rdb, cfg.RankWeights())
	ratingService := service.NewRatingService(ratingRepo, comboRepo, rdb)
	favoriteService := service.NewFavoriteService(favoriteRepo, comboRepo, rdb)
	commentService := service.NewCommentService(commentRepo, comboRepo, userRepo)
	moderationService := service.NewModerationService(comboRepo, commentRepo, rdb)
	catalogService := service.NewCatalogService(catalogRepo, rdb)

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	guards := handler.Guards{
		Optional: middleware.OptionalAuth(authService),
		Auth:     middleware.RequireAuth(authService),
		Admin:    middleware.RequireAdmin(),
		Limit:    limiter.Middleware(),
	}

	r := gin.New()
	r.Use(logging.GinLogger(), gin.Recovery(), metrics.Middleware(), middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", handler.NewHealthHandler(sqlDB).Health)
	if cfg.PrometheusEnabled {
		r.GET("/metrics", metrics.Handler())
	}

	api := r.Group("/api")
	handler.NewAuthHandler(authService, cfg.IsProduction()).RegisterRoutes(api, guards)
	handler.NewCatalogHandler(catalogService).RegisterRoutes(api)
	handler.NewComboHandler(comboService).RegisterRoutes(api, guards)
	handler.NewRatingHandler(ratingService).RegisterRoutes(api, guards)
	handler.NewFavoriteHandler(favoriteService).RegisterRoutes(api, guards)
	handler.NewCommentHandler(commentService).RegisterRoutes(api, guards)
	handler.NewAdminHandler(moderationService).RegisterRoutes(api, guards)

	go limiter.SweepEvery(ctx, limiterSweepInterval)

	return r, sessionRepo, nil
}

// sweepSessions deletes expired sessions until ctx is cancelled.
func sweepSessions(ctx context.Context, sessions repository.SessionRepository) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := sessions.DeleteExpired(ctx, now)
			if err != nil {
				logging.Warn().Err(err).Msg("session cleanup failed")
				continue
			}
			if n > 0 {
				logging.Info().Int64("deleted", n).Msg("expired sessions removed")
			}
		}
	}
}
