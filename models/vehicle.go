package models

// Vehicle represents a single vehicle record in the workstation catalog.
//
// The Vehicle model includes:
//   - Identity (id, make, model, year), immutable after creation
//   - Powertrain descriptors (engines, transmissions, drive and fuel type)
//   - ECU inventory and wiring protocol tag
//   - Tuning limits consumed by the diagnostic engine
//
// Example JSON representation:
//
//	{
//	  "id": "vehicle-bmw-m3-1724112000",
//	  "make": "BMW",
//	  "model": "M3",
//	  "year": 2021,
//	  "engines": ["S58B30"],
//	  "transmissions": ["ZF 8HP"],
//	  "drive_type": "RWD",
//	  "fuel_type": "petrol",
//	  "ecu_types": ["DME 8.8"],
//	  "protocol": "CAN 500k",
//	  "limits": {"max_rpm": 7200, "max_temp_c": 115, "min_fuel_pressure_psi": 50}
//	}
type Vehicle struct {
	// ID is the unique vehicle identifier
	ID string `json:"id"`

	// Make is the manufacturer name (required)
	Make string `json:"make" validate:"required"`

	// Model is the vehicle model name (required)
	Model string `json:"model" validate:"required"`

	// Year is the model year
	Year int `json:"year" validate:"omitempty,gte=1950,lte=2100"`

	// Engines lists the engine codes fitted to this vehicle
	Engines []string `json:"engines,omitempty"`

	// Transmissions lists the transmission variants
	Transmissions []string `json:"transmissions,omitempty"`

	// DriveType is the drivetrain layout (FWD, RWD, AWD)
	DriveType string `json:"drive_type,omitempty"`

	// FuelType is the fuel the engine runs on (petrol, diesel, hybrid)
	FuelType string `json:"fuel_type,omitempty"`

	// ECUTypes lists the control units installed in the vehicle
	ECUTypes []string `json:"ecu_types,omitempty"`

	// Protocol is the wiring/bus protocol tag (e.g. "CAN 500k", "K-Line")
	Protocol string `json:"protocol,omitempty"`

	// Limits holds the tuning thresholds used for diagnostics
	Limits TuningLimits `json:"limits"`

	// Systems is a free-form list of vehicle systems of interest
	Systems []string `json:"systems,omitempty"`
}

// TuningLimits are the per-vehicle thresholds the diagnostic engine
// evaluates telemetry against.
type TuningLimits struct {
	// MaxRPM is the engine speed ceiling before a warning is raised
	MaxRPM float64 `json:"max_rpm"`

	// MaxTempC is the coolant temperature ceiling in degrees Celsius
	MaxTempC float64 `json:"max_temp_c"`

	// MinFuelPressurePSI is the lowest acceptable fuel rail pressure
	MinFuelPressurePSI float64 `json:"min_fuel_pressure_psi"`

	// MaxBoostPSI is the boost ceiling for forced-induction engines
	MaxBoostPSI float64 `json:"max_boost_psi,omitempty"`
}

// Merge applies the non-identity fields of patch onto v. Identity fields
// (ID, Make, Model, Year) are never overwritten.
func (v *Vehicle) Merge(patch *Vehicle) {
	if len(patch.Engines) > 0 {
		v.Engines = patch.Engines
	}
	if len(patch.Transmissions) > 0 {
		v.Transmissions = patch.Transmissions
	}
	if patch.DriveType != "" {
		v.DriveType = patch.DriveType
	}
	if patch.FuelType != "" {
		v.FuelType = patch.FuelType
	}
	if len(patch.ECUTypes) > 0 {
		v.ECUTypes = patch.ECUTypes
	}
	if patch.Protocol != "" {
		v.Protocol = patch.Protocol
	}
	if patch.Limits != (TuningLimits{}) {
		v.Limits = patch.Limits
	}
	if len(patch.Systems) > 0 {
		v.Systems = patch.Systems
	}
}
