package handler

import (
	"time"

	app_errors "pico-watt/internal/errors"
	"pico-watt/internal/response"
	"pico-watt/internal/services"

	"github.com/gin-gonic/gin"
)

// ingestRequest is the body of POST /api/pico. Watt stays untyped so the
// service can distinguish an absent field from a non-numeric value.
type ingestRequest struct {
	Watt any `json:"watt"`
}

// IngestSample handles one raw reading from the sensor.
// 201 when stored, 200 "ignored" below the noise floor, 400 on bad input.
func (s *Server) IngestSample(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.ErrInvalidJSON)
		return
	}

	result, err := s.IngestService.Ingest(c.Request.Context(), req.Watt)
	if err != nil {
		if apiErr, ok := err.(*app_errors.APIError); ok {
			response.Error(c, apiErr)
		} else {
			response.Error(c, app_errors.ErrInternalServer)
		}
		return
	}

	if result.Status == services.IngestStatusIgnored {
		response.Ignored(c, result.Reason)
		return
	}

	// Fire-and-forget: a failed sweep must never fail this request.
	s.RetentionService.Notify()

	response.Created(c)
}

// CurrentWatt returns the most recent stored sample, or nulls when empty.
func (s *Server) CurrentWatt(c *gin.Context) {
	current, err := s.SeriesService.Current(c.Request.Context())
	if err != nil {
		respondSeriesError(c, err)
		return
	}
	response.OK(c, current)
}

// Watt24h returns the hourly series over the last 24 hours, or the raw
// unbucketed samples with ?mode=raw.
func (s *Server) Watt24h(c *gin.Context) {
	start := time.Now().Add(-24 * time.Hour)

	switch c.Query("mode") {
	case "", "hourly":
	case "raw":
		points, err := s.SeriesService.Raw(c.Request.Context(), start)
		if err != nil {
			respondSeriesError(c, err)
			return
		}
		response.OK(c, points)
		return
	default:
		response.Error(c, app_errors.NewAPIError(app_errors.ErrBadRequest, "invalid mode: must be \"hourly\" or \"raw\""))
		return
	}

	fill, apiErr := s.fillPolicy(c)
	if apiErr != nil {
		response.Error(c, apiErr)
		return
	}
	points, err := s.SeriesService.Hourly(c.Request.Context(), start, fill)
	if err != nil {
		respondSeriesError(c, err)
		return
	}
	response.OK(c, points)
}

// Watt7d returns the daily series over the last 7 days.
func (s *Server) Watt7d(c *gin.Context) {
	s.daily(c, time.Now().AddDate(0, 0, -7))
}

// Watt30d returns the daily series over the last 30 days.
func (s *Server) Watt30d(c *gin.Context) {
	s.daily(c, time.Now().AddDate(0, 0, -30))
}

// Watt12Monate returns the half-monthly series over the last 365 days.
func (s *Server) Watt12Monate(c *gin.Context) {
	points, err := s.SeriesService.HalfMonthly(c.Request.Context(), time.Now().AddDate(0, 0, -365))
	if err != nil {
		respondSeriesError(c, err)
		return
	}
	response.OK(c, points)
}

func (s *Server) daily(c *gin.Context, start time.Time) {
	fill, apiErr := s.fillPolicy(c)
	if apiErr != nil {
		response.Error(c, apiErr)
		return
	}
	points, err := s.SeriesService.Daily(c.Request.Context(), start, fill)
	if err != nil {
		respondSeriesError(c, err)
		return
	}
	response.OK(c, points)
}

// fillPolicy resolves the per-request missing-bucket policy override.
func (s *Server) fillPolicy(c *gin.Context) (services.FillPolicy, *app_errors.APIError) {
	switch c.Query("fill") {
	case "":
		return s.SeriesService.DefaultFill(), nil
	case "null":
		return services.FillNull, nil
	case "zero":
		return services.FillZero, nil
	default:
		return "", app_errors.NewAPIError(app_errors.ErrBadRequest, "invalid fill: must be \"null\" or \"zero\"")
	}
}

func respondSeriesError(c *gin.Context, err error) {
	if apiErr, ok := err.(*app_errors.APIError); ok {
		response.Error(c, apiErr)
		return
	}
	response.Error(c, app_errors.ErrDatabase)
}
