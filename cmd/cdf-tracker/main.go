package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/wanjala/cdf-tracker/internal/auth"
	"github.com/wanjala/cdf-tracker/internal/cache"
	"github.com/wanjala/cdf-tracker/internal/config"
	"github.com/wanjala/cdf-tracker/internal/db"
	"github.com/wanjala/cdf-tracker/internal/excel"
	httphandler "github.com/wanjala/cdf-tracker/internal/http"
	"github.com/wanjala/cdf-tracker/internal/http/middleware"
	"github.com/wanjala/cdf-tracker/internal/logger"
	"github.com/wanjala/cdf-tracker/internal/pdf"
	"github.com/wanjala/cdf-tracker/internal/repository"
	"github.com/wanjala/cdf-tracker/internal/service"
	"github.com/wanjala/cdf-tracker/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	analyticsCache := cache.New(cfg.Redis, log)

	imageStore, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init object store")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := imageStore.EnsureBucket(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure image bucket, uploads may fail")
	}
	cancel()

	projectRepo := repository.NewProjectRepository(database)
	constituencyRepo := repository.NewConstituencyRepository(database)
	contractorRepo := repository.NewContractorRepository(database)
	awardRepo := repository.NewAwardRepository(database)
	feedbackRepo := repository.NewFeedbackRepository(database)
	userRepo := repository.NewUserRepository(database)
	imageRepo := repository.NewImageRepository(database)

	tokens := auth.NewTokens(cfg.Auth.AccessSecret, cfg.Auth.TokenTTLMinutes)
	authService := service.NewAuthService(userRepo, tokens)

	services := httphandler.Services{
		Projects:       service.NewProjectService(projectRepo, constituencyRepo, analyticsCache),
		Constituencies: service.NewConstituencyService(constituencyRepo),
		Contractors:    service.NewContractorService(contractorRepo),
		Awards:         service.NewAwardService(awardRepo, projectRepo, contractorRepo, analyticsCache),
		Feedback:       service.NewFeedbackService(feedbackRepo, projectRepo),
		Users:          service.NewUserService(userRepo),
		Auth:           authService,
		Analytics:      service.NewAnalyticsService(projectRepo, constituencyRepo, analyticsCache),
		Exports:        service.NewExportService(projectRepo, excel.NewGenerator(), pdf.NewGenerator()),
		Images:         service.NewImageService(imageRepo, projectRepo, imageStore),
	}

	handler := httphandler.NewHandler(services, log)
	authMiddleware := middleware.Auth(authService)
	adminMiddleware := middleware.RequireAdmin()
	router := httphandler.NewRouter(handler, authMiddleware, adminMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting cdf tracker")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
