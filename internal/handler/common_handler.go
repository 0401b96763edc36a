package handler

import (
	"net/http"
	"time"

	"pico-watt/internal/version"

	"github.com/gin-gonic/gin"
)

// Health handles the health check endpoint used by load balancers and the
// healthcheck probe binary.
func (s *Server) Health(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK

	sqlDB, err := s.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"version":   version.Version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
