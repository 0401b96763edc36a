// Package container wires the application dependencies.
package container

import (
	"pico-watt/internal/app"
	"pico-watt/internal/config"
	"pico-watt/internal/db"
	"pico-watt/internal/handler"
	"pico-watt/internal/router"
	"pico-watt/internal/services"
	"pico-watt/internal/store"

	"go.uber.org/dig"
)

// BuildContainer creates the dig container with all providers registered.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		config.NewManager,
		db.NewDB,
		store.NewMeasurementStore,
		services.NewIngestService,
		services.NewBackfillService,
		services.NewSeriesService,
		services.NewRetentionService,
		handler.NewServer,
		router.NewRouter,
		app.NewApp,
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}
