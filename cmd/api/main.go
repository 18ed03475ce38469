package main

import (
	"context"
	"errors"
	"gratitude/cmd/internal/config"
	"gratitude/cmd/internal/domain/sqlite"
	"gratitude/cmd/internal/domain/sqlite/repository"
	"gratitude/cmd/internal/http/handler"
	"gratitude/cmd/internal/http/render"
	"gratitude/cmd/internal/infrastructure/aws/storage"
	"gratitude/cmd/internal/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads env vars depending on environment
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("unable to load configuration, %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("unable to open database %s, %v", cfg.DatabasePath, err)
	}

	// Init S3 client, nil when archiving is off
	s3Client, err := storage.NewStorageClient(ctx, cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		log.Fatalf("unable to init storage client, %v", err)
	}
	if s3Client == nil {
		log.Info("no S3 bucket configured, exports will not be archived")
	}

	renderer, err := render.NewTemplateRenderer()
	if err != nil {
		log.Fatalf("unable to parse templates, %v", err)
	}

	gratitudeRepo := repository.NewGratitudeRepository(db)
	gratitudeService := service.NewGratitudeService(gratitudeRepo, s3Client, validator.New())
	gratitudeRoutes := handler.NewGratitudeDefault(gratitudeService)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.LogLevel)
	e.Renderer = renderer
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))

	gratitudeRoutes.Register(e)

	// Docker Compose healthcheck
	e.GET("/health", handler.HealthCheck)

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped unexpectedly, %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forced shutdown, %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
