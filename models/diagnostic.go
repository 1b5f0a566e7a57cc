package models

import "time"

// Sub-check status values reported by the diagnostic engine.
const (
	CheckStatusOK      = "OK"
	CheckStatusWarning = "WARNING"
	CheckStatusCheck   = "CHECK"
	CheckStatusFault   = "FAULT"

	TempStatusNormal = "NORMAL"
	TempStatusHigh   = "HIGH"

	PressureStatusOK  = "OK"
	PressureStatusLow = "LOW"
)

// Alert severities.
const (
	AlertSeverityWarning  = "WARNING"
	AlertSeverityCritical = "CRITICAL"
)

// TelemetrySample is one live-data snapshot fed into a diagnostic run.
type TelemetrySample struct {
	// RPM is the engine speed
	RPM float64 `json:"rpm"`

	// CoolantTempC is the coolant temperature in degrees Celsius
	CoolantTempC float64 `json:"coolant_temp_c"`

	// FuelPressurePSI is the fuel rail pressure
	FuelPressurePSI float64 `json:"fuel_pressure_psi"`

	// Lambda is the normalized air/fuel ratio signal
	Lambda float64 `json:"lambda"`

	// Gear is the currently reported gear
	Gear int `json:"gear"`

	// VehicleSpeedKPH is the road speed
	VehicleSpeedKPH float64 `json:"vehicle_speed_kph"`
}

// Alert is one active condition raised by a diagnostic run.
type Alert struct {
	// Severity is WARNING or CRITICAL
	Severity string `json:"severity"`

	// System names the subsystem that raised the alert
	System string `json:"system"`

	// Message is the human-readable alert text
	Message string `json:"message"`
}

// EngineReport is the engine sub-check of a diagnostic result.
type EngineReport struct {
	RPM            float64 `json:"rpm"`
	Status         string  `json:"status"`
	CoolantTempC   float64 `json:"coolant_temp_c"`
	TempStatus     string  `json:"temp_status"`
	FuelPressure   float64 `json:"fuel_pressure_psi"`
	PressureStatus string  `json:"pressure_status"`
}

// TransmissionReport passes through the reported gear plus a synthetic
// fluid-temperature reading. The fluid temperature is a placeholder, not
// an authoritative measurement.
type TransmissionReport struct {
	Gear       int     `json:"gear"`
	FluidTempC float64 `json:"fluid_temp_c"`
	Status     string  `json:"status"`
}

// EmissionsReport is the lambda-window sub-check.
type EmissionsReport struct {
	Lambda float64 `json:"lambda"`
	Status string  `json:"status"`
}

// SensorReport is a per-sensor OK/FAULT determination.
type SensorReport struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// DiagnosticResult is the outcome of one full diagnostic run. Score starts
// at 100 and is reduced per failed sub-check, clamped to [0, 100].
type DiagnosticResult struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	VehicleID    string             `json:"vehicle_id"`
	Engine       EngineReport       `json:"engine"`
	Transmission TransmissionReport `json:"transmission"`
	Emissions    EmissionsReport    `json:"emissions"`
	Sensors      []SensorReport     `json:"sensors"`
	Alerts       []Alert            `json:"alerts"`
	Score        int                `json:"score"`
}
