package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/db"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
)

const appVersion = "0.2.0"

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	setupLogger(cfg)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.ConnectWithRetry(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	sqlDB, err := database.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get underlying DB")
	}
	defer sqlDB.Close()

	opts := handler.RouterOptions{
		Books:  repository.NewGormBookRepository(database),
		Health: handler.NewHealthHandler(handler.HealthOptions{
			DB:        sqlDB,
			Driver:    cfg.DBDriver,
			Version:   appVersion,
			StartTime: startTime,
		}),
	}

	if cfg.RateLimitEnabled() {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go limiter.Run(ctx)
		opts.Middleware = append(opts.Middleware, limiter.Handler())
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("driver", cfg.DBDriver).
			Str("version", appVersion).
			Msg("starting catalog server")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
			return
		}
	}

	log.Info().Msg("server stopped")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
