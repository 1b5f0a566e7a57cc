package diag

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunedeck.org/tunedeck/internal/store"
	"tunedeck.org/tunedeck/models"
)

func newTestEngine(t *testing.T, historyLimit int) (*Engine, string) {
	t.Helper()

	s, err := store.New(t.TempDir())
	require.NoError(t, err)

	id, err := s.AddVehicle(&models.Vehicle{
		Make:  "BMW",
		Model: "335i",
		Year:  2012,
		Limits: models.TuningLimits{
			MaxRPM:             7000,
			MaxTempC:           120,
			MinFuelPressurePSI: 43,
		},
	})
	require.NoError(t, err)

	return New(s, historyLimit), id
}

func healthySample() models.TelemetrySample {
	return models.TelemetrySample{
		RPM:             2000,
		CoolantTempC:    92,
		FuelPressurePSI: 55,
		Lambda:          1.0,
		Gear:            3,
	}
}

func TestRunFullDiagnosticHealthy(t *testing.T) {
	e, id := newTestEngine(t, 0)

	result, err := e.RunFullDiagnostic(id, healthySample())
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, models.CheckStatusOK, result.Engine.Status)
	assert.Equal(t, models.TempStatusNormal, result.Engine.TempStatus)
	assert.Equal(t, models.PressureStatusOK, result.Engine.PressureStatus)
	assert.Equal(t, models.CheckStatusOK, result.Emissions.Status)
	assert.Empty(t, result.Alerts)
	assert.Equal(t, 3, result.Transmission.Gear)
	assert.NotEmpty(t, result.Sensors)
}

func TestRunFullDiagnosticUnknownVehicle(t *testing.T) {
	e, _ := newTestEngine(t, 0)

	_, err := e.RunFullDiagnostic("vehicle-missing", healthySample())
	require.Error(t, err)
	assert.True(t, store.IsNotFound(err))
}

func TestOverTemperatureRaisesCritical(t *testing.T) {
	e, id := newTestEngine(t, 0)

	sample := models.TelemetrySample{
		RPM:             2000,
		CoolantTempC:    125,
		FuelPressurePSI: 55,
		Lambda:          1.0,
	}

	result, err := e.RunFullDiagnostic(id, sample)
	require.NoError(t, err)

	assert.Equal(t, models.TempStatusHigh, result.Engine.TempStatus)
	assert.Equal(t, 90, result.Score)

	require.Len(t, result.Alerts, 1)
	assert.Equal(t, models.AlertSeverityCritical, result.Alerts[0].Severity)
	assert.Equal(t, "engine", result.Alerts[0].System)
}

func TestLowFuelPressureWarns(t *testing.T) {
	e, id := newTestEngine(t, 0)

	sample := healthySample()
	sample.FuelPressurePSI = 30

	result, err := e.RunFullDiagnostic(id, sample)
	require.NoError(t, err)

	assert.Equal(t, models.PressureStatusLow, result.Engine.PressureStatus)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, models.AlertSeverityWarning, result.Alerts[0].Severity)
	assert.Equal(t, "fuel", result.Alerts[0].System)
}

func TestEmissionsWindow(t *testing.T) {
	tests := []struct {
		lambda float64
		status string
	}{
		{1.0, models.CheckStatusOK},
		{0.85, models.CheckStatusOK},
		{1.15, models.CheckStatusOK},
		{0.70, models.CheckStatusCheck},
		{1.30, models.CheckStatusCheck},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("lambda=%.2f", tt.lambda), func(t *testing.T) {
			e, id := newTestEngine(t, 0)

			sample := healthySample()
			sample.Lambda = tt.lambda

			result, err := e.RunFullDiagnostic(id, sample)
			require.NoError(t, err)
			assert.Equal(t, tt.status, result.Emissions.Status)
		})
	}
}

func TestScoreAlwaysInBounds(t *testing.T) {
	e, id := newTestEngine(t, 0)

	samples := []models.TelemetrySample{
		{},
		{RPM: 99999, CoolantTempC: 500, FuelPressurePSI: -10, Lambda: -5},
		{RPM: -1, CoolantTempC: -40, FuelPressurePSI: 0, Lambda: 99},
		healthySample(),
	}

	for _, sample := range samples {
		result, err := e.RunFullDiagnostic(id, sample)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
	}
}

func TestAlertsReplaceActiveSet(t *testing.T) {
	e, id := newTestEngine(t, 0)

	hot := healthySample()
	hot.CoolantTempC = 130

	_, err := e.RunFullDiagnostic(id, hot)
	require.NoError(t, err)
	require.NotEmpty(t, e.ActiveAlerts())

	// A healthy run replaces, not appends.
	_, err = e.RunFullDiagnostic(id, healthySample())
	require.NoError(t, err)
	assert.Empty(t, e.ActiveAlerts())
}

func TestHistoryBoundedAndOrdered(t *testing.T) {
	e, id := newTestEngine(t, 5)

	for i := 0; i < 8; i++ {
		sample := healthySample()
		sample.RPM = float64(1000 + i)
		_, err := e.RunFullDiagnostic(id, sample)
		require.NoError(t, err)
	}

	history := e.History(0)
	require.Len(t, history, 5)
	// Most recent first.
	assert.Equal(t, float64(1007), history[0].Engine.RPM)
	assert.Equal(t, float64(1003), history[4].Engine.RPM)

	limited := e.History(2)
	require.Len(t, limited, 2)
	assert.Equal(t, float64(1007), limited[0].Engine.RPM)
}

func TestClearHistoryKeepsAlerts(t *testing.T) {
	e, id := newTestEngine(t, 0)

	hot := healthySample()
	hot.CoolantTempC = 130

	_, err := e.RunFullDiagnostic(id, hot)
	require.NoError(t, err)

	e.ClearHistory()

	assert.Empty(t, e.History(0))
	assert.NotEmpty(t, e.ActiveAlerts(), "clearing history must not clear active alerts")
}
