// cmd/opsd/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/floritflats/opsboard/internal/api"
	"github.com/floritflats/opsboard/internal/cache"
	"github.com/floritflats/opsboard/internal/config"
	"github.com/floritflats/opsboard/internal/masters"
	"github.com/floritflats/opsboard/internal/service"
	"github.com/floritflats/opsboard/internal/storage"
	"github.com/floritflats/opsboard/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.App.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	m, err := masters.Load(cfg.App.MastersDir)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("dir", cfg.App.MastersDir).Msg("Failed to load master tables")
	}
	logger.Log.Info().Int("apartments", len(m.Apartments)).Msg("Master tables loaded")

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize report cache")
	}
	store, err := storage.NewWorkbookStore(cfg.Storage)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize workbook store")
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		logger.Log.Warn().Err(err).Str("timezone", cfg.App.Timezone).Msg("Unknown timezone, using host local time")
		loc = time.Local
	}

	reportService := service.NewReportService(m, reportCache, store, loc)

	router := api.NewRouter(&api.Services{
		ReportService:    reportService,
		DefaultDays:      cfg.App.DefaultDays,
		DefaultObjective: cfg.App.DefaultObjective,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
