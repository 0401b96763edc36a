// Package response provides JSON response helpers for the preserved wire
// contract. Unlike a fresh API design, list endpoints return bare JSON
// arrays and errors are {"error": message}: existing consumers parse these
// shapes and they must not change.
package response

import (
	"net/http"

	app_errors "pico-watt/internal/errors"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error response shape.
type ErrorBody struct {
	Error string `json:"error"`
}

// IngestOKBody acknowledges a persisted sample.
type IngestOKBody struct {
	Status string `json:"status"`
}

// IngestIgnoredBody reports a valid but sub-threshold sample that was
// deliberately not persisted.
type IngestIgnoredBody struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// OK sends the payload as-is with status 200.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends the ingest acknowledgement with status 201.
func Created(c *gin.Context) {
	c.JSON(http.StatusCreated, IngestOKBody{Status: "ok"})
}

// Ignored sends the below-threshold outcome with status 200.
func Ignored(c *gin.Context, reason string) {
	c.JSON(http.StatusOK, IngestIgnoredBody{Status: "ignored", Reason: reason})
}

// Error sends a standardized error response using an APIError.
func Error(c *gin.Context, apiErr *app_errors.APIError) {
	c.JSON(apiErr.HTTPStatus, ErrorBody{Error: apiErr.Message})
}
