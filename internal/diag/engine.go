// Package diag turns live telemetry plus a vehicle's stored tuning limits
// into a health assessment: per-system findings, a 0–100 score, active
// alerts and a bounded run history.
package diag

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"tunedeck.org/tunedeck/internal/obd"
	"tunedeck.org/tunedeck/internal/store"
	"tunedeck.org/tunedeck/models"
)

// DefaultHistoryLimit bounds the diagnostic history when the caller does
// not configure one.
const DefaultHistoryLimit = 500

// Score deductions per failed sub-check. The score starts at 100 and is
// clamped to [0, 100].
const (
	engineDeduction    = 15
	tempDeduction      = 10
	emissionsDeduction = 20
)

// sensorFaultProbability is a fixed illustrative constant; sensor faults
// are not derived from real signal quality.
const sensorFaultProbability = 0.02

// monitoredSensors are the channels checked on every run.
var monitoredSensors = []string{
	"coolant_temp", "intake_air_temp", "maf", "o2_bank1", "fuel_pressure", "knock",
}

// Engine runs diagnostics against vehicles in the store. Each run is
// stateless apart from the append-only history and the active alert set,
// both owned by the Engine instance.
type Engine struct {
	store        *store.Store
	historyLimit int

	mu      sync.Mutex
	history []*models.DiagnosticResult
	alerts  []models.Alert
	rng     *rand.Rand
}

// New creates a diagnostic engine backed by the given store. A
// historyLimit of 0 or less falls back to DefaultHistoryLimit.
func New(s *store.Store, historyLimit int) *Engine {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Engine{
		store:        s,
		historyLimit: historyLimit,
		history:      []*models.DiagnosticResult{},
		alerts:       []models.Alert{},
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RunFullDiagnostic evaluates one telemetry sample against the vehicle's
// tuning limits. The result is appended to the history and its alerts
// replace the active alert set.
func (e *Engine) RunFullDiagnostic(vehicleID string, sample models.TelemetrySample) (*models.DiagnosticResult, error) {
	vehicle, err := e.store.GetVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	limits := vehicle.Limits

	result := &models.DiagnosticResult{
		ID:        "diag-" + uuid.NewString(),
		Timestamp: time.Now().UTC(),
		VehicleID: vehicleID,
		Alerts:    []models.Alert{},
		Score:     100,
	}

	result.Engine = e.checkEngine(sample, limits)
	result.Transmission = e.checkTransmission(sample)
	result.Emissions = checkEmissions(sample)
	result.Sensors = e.checkSensors()

	if result.Engine.Status != models.CheckStatusOK {
		result.Score -= engineDeduction
	}
	if result.Engine.TempStatus != models.TempStatusNormal {
		result.Score -= tempDeduction
	}
	if result.Emissions.Status != models.CheckStatusOK {
		result.Score -= emissionsDeduction
	}
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}

	if sample.CoolantTempC > limits.MaxTempC {
		result.Alerts = append(result.Alerts, models.Alert{
			Severity: models.AlertSeverityCritical,
			System:   "engine",
			Message:  fmt.Sprintf("coolant temperature %.1f°C exceeds limit %.1f°C", sample.CoolantTempC, limits.MaxTempC),
		})
	}
	if sample.FuelPressurePSI < limits.MinFuelPressurePSI {
		result.Alerts = append(result.Alerts, models.Alert{
			Severity: models.AlertSeverityWarning,
			System:   "fuel",
			Message:  fmt.Sprintf("fuel pressure %.1f psi below minimum %.1f psi", sample.FuelPressurePSI, limits.MinFuelPressurePSI),
		})
	}
	if result.Emissions.Status != models.CheckStatusOK {
		result.Alerts = append(result.Alerts, models.Alert{
			Severity: models.AlertSeverityWarning,
			System:   "emissions",
			Message:  fmt.Sprintf("lambda %.3f outside closed-loop window [%.2f, %.2f]", sample.Lambda, obd.LambdaRichLimit, obd.LambdaLeanLimit),
		})
	}

	e.mu.Lock()
	e.history = append(e.history, result)
	if len(e.history) > e.historyLimit {
		e.history = e.history[len(e.history)-e.historyLimit:]
	}
	// The active alert set is replaced, not accumulated.
	e.alerts = result.Alerts
	e.mu.Unlock()

	e.logRun(result)

	return result, nil
}

// ActiveAlerts returns the alerts raised by the most recent run.
func (e *Engine) ActiveAlerts() []models.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Alert, len(e.alerts))
	copy(out, e.alerts)
	return out
}

// History returns up to limit results, most recent first. A limit of 0 or
// less returns the full retained history.
func (e *Engine) History(limit int) []*models.DiagnosticResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*models.DiagnosticResult, 0, len(e.history))
	for i := len(e.history) - 1; i >= 0; i-- {
		out = append(out, e.history[i])
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// ClearHistory empties the run history. Active alerts are untouched.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history = []*models.DiagnosticResult{}
}

func (e *Engine) checkEngine(sample models.TelemetrySample, limits models.TuningLimits) models.EngineReport {
	report := models.EngineReport{
		RPM:          sample.RPM,
		Status:       models.CheckStatusOK,
		CoolantTempC: sample.CoolantTempC,
		TempStatus:   models.TempStatusNormal,
		FuelPressure: sample.FuelPressurePSI,
	}

	if sample.RPM > limits.MaxRPM {
		report.Status = models.CheckStatusWarning
	}
	if sample.CoolantTempC >= limits.MaxTempC {
		report.TempStatus = models.TempStatusHigh
	}
	if sample.FuelPressurePSI >= limits.MinFuelPressurePSI {
		report.PressureStatus = models.PressureStatusOK
	} else {
		report.PressureStatus = models.PressureStatusLow
	}

	return report
}

// checkTransmission passes through the reported gear with a synthetic
// fluid temperature. The reading is a placeholder, not a measurement.
func (e *Engine) checkTransmission(sample models.TelemetrySample) models.TransmissionReport {
	e.mu.Lock()
	fluidTemp := 72 + e.rng.Float64()*20
	e.mu.Unlock()

	return models.TransmissionReport{
		Gear:       sample.Gear,
		FluidTempC: fluidTemp,
		Status:     models.CheckStatusOK,
	}
}

func checkEmissions(sample models.TelemetrySample) models.EmissionsReport {
	report := models.EmissionsReport{
		Lambda: sample.Lambda,
		Status: models.CheckStatusOK,
	}

	if sample.Lambda < obd.LambdaRichLimit || sample.Lambda > obd.LambdaLeanLimit {
		report.Status = models.CheckStatusCheck
	}

	return report
}

func (e *Engine) checkSensors() []models.SensorReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	reports := make([]models.SensorReport, 0, len(monitoredSensors))
	for _, name := range monitoredSensors {
		status := models.CheckStatusOK
		if e.rng.Float64() < sensorFaultProbability {
			status = models.CheckStatusFault
		}
		reports = append(reports, models.SensorReport{Name: name, Status: status})
	}
	return reports
}

// logRun writes a diagnostic log entry; failures are reported, never fatal.
func (e *Engine) logRun(result *models.DiagnosticResult) {
	level := models.LogLevelInfo
	if len(result.Alerts) > 0 {
		level = models.LogLevelWarn
	}
	_, err := e.store.AddLog(&models.LogEntry{
		Type:    models.LogTypeDiag,
		Level:   level,
		Message: fmt.Sprintf("diagnostic run for %s scored %d with %d alert(s)", result.VehicleID, result.Score, len(result.Alerts)),
	})
	if err != nil {
		log.Printf("Failed to write diagnostic log entry: %v", err)
	}
}
