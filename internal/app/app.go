// Package app provides the main application logic and lifecycle management.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"pico-watt/internal/models"
	"pico-watt/internal/services"
	"pico-watt/internal/types"
	"pico-watt/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"
	"gorm.io/gorm"
)

// App holds all services and manages the application lifecycle.
type App struct {
	engine           *gin.Engine
	configManager    types.ConfigManager
	backfillService  *services.BackfillService
	retentionService *services.RetentionService
	db               *gorm.DB
	httpServer       *http.Server
}

// AppParams defines the dependencies for the App.
type AppParams struct {
	dig.In
	Engine           *gin.Engine
	ConfigManager    types.ConfigManager
	BackfillService  *services.BackfillService
	RetentionService *services.RetentionService
	DB               *gorm.DB
}

// NewApp is the constructor for App, with dependencies injected by dig.
func NewApp(params AppParams) *App {
	return &App{
		engine:           params.Engine,
		configManager:    params.ConfigManager,
		backfillService:  params.BackfillService,
		retentionService: params.RetentionService,
		db:               params.DB,
	}
}

// Start runs the application, it is a non-blocking call.
func (a *App) Start() error {
	if err := a.db.AutoMigrate(&models.Measurement{}); err != nil {
		return fmt.Errorf("database auto-migration failed: %w", err)
	}
	logrus.Info("Database auto-migration completed.")

	// Catch-up backfill runs exactly once, before traffic is accepted, and
	// only when synthetic data is wanted. It is never a side effect of the
	// ingest path.
	if a.backfillService.Enabled() {
		inserted, err := a.backfillService.Run(context.Background())
		if err != nil {
			// Partial backfill is harmless: the next run resumes from the
			// last stored hour.
			logrus.WithError(err).Warn("Backfill did not complete")
		} else if inserted > 0 {
			logrus.Infof("Backfill inserted %d synthetic measurements.", inserted)
		}
	} else {
		logrus.Info("Backfill is disabled.")
	}

	a.retentionService.Start()

	a.configManager.DisplayServerConfig()

	serverConfig := a.configManager.GetEffectiveServerConfig()
	a.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
		Handler:        a.engine,
		ReadTimeout:    time.Duration(serverConfig.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(serverConfig.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(serverConfig.IdleTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logrus.Infof("pico-watt started successfully on Version: %s", version.Version)
		logrus.Infof("Server address: http://%s:%d", serverConfig.Host, serverConfig.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server startup failed: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the application.
func (a *App) Stop(ctx context.Context) {
	logrus.Info("Shutting down server...")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		logrus.Warn("HTTP server graceful shutdown timed out, forcing remaining connections to close.")
		if closeErr := a.httpServer.Close(); closeErr != nil {
			logrus.Errorf("Error forcing HTTP server to close: %v", closeErr)
		}
	}
	logrus.Info("HTTP server has been shut down.")

	stoppableServices := []func(context.Context){
		a.retentionService.Stop,
	}

	var wg sync.WaitGroup
	wg.Add(len(stoppableServices))
	for _, stopFunc := range stoppableServices {
		go func(stop func(context.Context)) {
			defer wg.Done()
			stop(ctx)
		}(stopFunc)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logrus.Info("All background services stopped.")
	case <-ctx.Done():
		logrus.Warn("Shutdown timed out, some services may not have stopped gracefully.")
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logrus.Errorf("Error closing database connection: %v", err)
		}
	}

	logrus.Info("Server exited gracefully")
}
