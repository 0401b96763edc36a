// Package handler contains the HTTP handlers.
package handler

import (
	"pico-watt/internal/services"
	"pico-watt/internal/types"

	"go.uber.org/dig"
	"gorm.io/gorm"
)

// Server holds the handler dependencies.
type Server struct {
	DB               *gorm.DB
	config           types.ConfigManager
	IngestService    *services.IngestService
	SeriesService    *services.SeriesService
	RetentionService *services.RetentionService
}

// ServerParams defines the dependencies for the Server.
type ServerParams struct {
	dig.In
	DB               *gorm.DB
	ConfigManager    types.ConfigManager
	IngestService    *services.IngestService
	SeriesService    *services.SeriesService
	RetentionService *services.RetentionService
}

// NewServer creates a new Server instance.
func NewServer(params ServerParams) *Server {
	return &Server{
		DB:               params.DB,
		config:           params.ConfigManager,
		IngestService:    params.IngestService,
		SeriesService:    params.SeriesService,
		RetentionService: params.RetentionService,
	}
}
