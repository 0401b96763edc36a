package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pico-watt/internal/config"
	app_errors "pico-watt/internal/errors"
	"pico-watt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIngestService(t *testing.T, mock *config.MockConfig) *IngestService {
	t.Helper()
	return NewIngestService(setupTestStore(t), mock)
}

func TestIngestAcceptedComputesEnergy(t *testing.T) {
	svc := setupIngestService(t, config.NewMockConfig())
	t0 := time.Date(2025, 5, 10, 12, 34, 56, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	result, err := svc.Ingest(context.Background(), 42.0)
	require.NoError(t, err)
	assert.Equal(t, IngestStatusOK, result.Status)

	var stored []models.Measurement
	require.NoError(t, svc.store.DB().Find(&stored).Error)
	require.Len(t, stored, 1)

	require.NotNil(t, stored[0].PowerWatts)
	assert.Equal(t, 42.0, *stored[0].PowerWatts)
	require.NotNil(t, stored[0].EnergyKWh)
	// 42 W over a nominal 5 s interval
	expected := 42.0 * (5.0 / 3600.0) / 1000.0
	assert.InDelta(t, expected, *stored[0].EnergyKWh, 1e-9)
	assert.True(t, stored[0].Timestamp.Equal(t0))
}

func TestIngestBelowThresholdIgnored(t *testing.T) {
	svc := setupIngestService(t, config.NewMockConfig())

	result, err := svc.Ingest(context.Background(), 3.0)
	require.NoError(t, err)
	assert.Equal(t, IngestStatusIgnored, result.Status)
	assert.Equal(t, "watt < 10", result.Reason)

	count, err := svc.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "below-threshold readings must not be persisted")
}

func TestIngestThresholdIsConfigurable(t *testing.T) {
	mock := config.NewMockConfig()
	mock.ThresholdWatts = 5.0
	svc := setupIngestService(t, mock)

	result, err := svc.Ingest(context.Background(), 7.0)
	require.NoError(t, err)
	assert.Equal(t, IngestStatusOK, result.Status)

	result, err = svc.Ingest(context.Background(), 3.0)
	require.NoError(t, err)
	assert.Equal(t, IngestStatusIgnored, result.Status)
	assert.Equal(t, "watt < 5", result.Reason)
}

func TestIngestInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		rawWatt any
	}{
		{name: "missing field", rawWatt: nil},
		{name: "non-numeric string", rawWatt: "kaputt"},
		{name: "boolean", rawWatt: true},
		{name: "object", rawWatt: map[string]any{"value": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupIngestService(t, config.NewMockConfig())

			_, err := svc.Ingest(context.Background(), tt.rawWatt)
			require.Error(t, err)

			apiErr, ok := err.(*app_errors.APIError)
			require.True(t, ok)
			assert.Equal(t, 400, apiErr.HTTPStatus)

			count, countErr := svc.store.Count(context.Background())
			require.NoError(t, countErr)
			assert.Equal(t, int64(0), count, "invalid input must not write to the store")
		})
	}
}

func TestIngestNumericStringAccepted(t *testing.T) {
	svc := setupIngestService(t, config.NewMockConfig())

	result, err := svc.Ingest(context.Background(), "42.5")
	require.NoError(t, err)
	assert.Equal(t, IngestStatusOK, result.Status)
	require.NotNil(t, result.Measurement)
	assert.Equal(t, 42.5, *result.Measurement.PowerWatts)
}

func TestIngestWithoutEnergyTracking(t *testing.T) {
	mock := config.NewMockConfig()
	mock.EnergyTracking = false
	svc := setupIngestService(t, mock)

	result, err := svc.Ingest(context.Background(), 42.0)
	require.NoError(t, err)
	require.NotNil(t, result.Measurement)
	assert.Nil(t, result.Measurement.EnergyKWh)
}

func TestParseWatt(t *testing.T) {
	tests := []struct {
		name     string
		rawWatt  any
		expected float64
		wantErr  bool
	}{
		{name: "float", rawWatt: 42.0, expected: 42.0},
		{name: "json number", rawWatt: json.Number("17.5"), expected: 17.5},
		{name: "numeric string", rawWatt: "99", expected: 99},
		{name: "nil", rawWatt: nil, wantErr: true},
		{name: "garbage string", rawWatt: "watt", wantErr: true},
		{name: "bad json number", rawWatt: json.Number("x"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, apiErr := ParseWatt(tt.rawWatt)
			if tt.wantErr {
				require.NotNil(t, apiErr)
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEnergyKWh(t *testing.T) {
	tests := []struct {
		name            string
		watts           float64
		intervalSeconds float64
		expected        float64
	}{
		{name: "42W for 5s", watts: 42, intervalSeconds: 5, expected: 0.000058333333},
		{name: "100W for 1h", watts: 100, intervalSeconds: 3600, expected: 0.1},
		{name: "zero watts", watts: 0, intervalSeconds: 5, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, EnergyKWh(tt.watts, tt.intervalSeconds), 1e-9)
		})
	}
}
