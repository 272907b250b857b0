package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "vidshelf/docs" // swagger docs

	"vidshelf/internal/auth"
	"vidshelf/internal/cache"
	"vidshelf/internal/config"
	"vidshelf/internal/db"
	"vidshelf/internal/handler"
	"vidshelf/internal/ingest"
	"vidshelf/internal/model"
	"vidshelf/internal/repository"
	"vidshelf/internal/router"
	"vidshelf/internal/service"
	"vidshelf/internal/storage"
)

const shutdownTimeout = 30 * time.Second

// @title Media Catalog API
// @version 1.0
// @description Media catalog service with video uploads, tag management, and directory ingestion.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	gormDB, err := db.NewMySQL(cfg.DB.DSN, cfg.DB.MaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// The unique indexes on videos.title, tags.title and users.username are
	// what make duplicate detection safe under concurrency.
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Video{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate failed")
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Repositories
	videoRepo := repository.NewVideoRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	// Services
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret)
	authService := service.NewAuthService(userRepo, tokens)
	videoService := service.NewVideoService(videoRepo, cacheClient)
	tagService := service.NewTagService(tagRepo)
	userService := service.NewUserService(userRepo)

	sink, err := storage.NewSink(cfg.Media.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare upload dir")
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	videoHandler := handler.NewVideoHandler(videoService, sink)
	tagHandler := handler.NewTagHandler(tagService)
	userHandler := handler.NewUserHandler(userService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	router.Register(e, cfg, authHandler, videoHandler, tagHandler, userHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ingestion watcher: one fsnotify pump, one processor, alive for the
	// whole process.
	if err := os.MkdirAll(cfg.Media.WatchDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Media.WatchDir).Msg("failed to create watch dir")
	}
	watcher, err := ingest.NewWatcher(cfg.Media.WatchDir, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start ingestion watcher")
	}
	processor := ingest.NewProcessor(videoRepo, log.Logger)

	go func() {
		if err := watcher.Run(ctx); err != nil {
			log.Error().Err(err).Msg("watcher stopped")
		}
	}()
	go processor.Run(ctx, watcher.Files())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := ":" + cfg.Server.Port
		log.Info().Str("addr", addr).Msg("starting HTTP server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error stopping HTTP server")
	}
}
