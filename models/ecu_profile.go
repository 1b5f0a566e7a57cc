package models

import "time"

// ECUProfile captures the identity and parameter snapshot of one control
// unit on a vehicle. Profiles belong to exactly one vehicle and are updated
// in place; no revision history is kept.
type ECUProfile struct {
	// ID is the unique profile identifier
	ID string `json:"id"`

	// VehicleID is the owning vehicle (required, must exist)
	VehicleID string `json:"vehicle_id" validate:"required"`

	// Name is the human-readable profile name (required)
	Name string `json:"name" validate:"required"`

	// ECUType identifies the control unit family (e.g. "Bosch MED17.3.3")
	ECUType string `json:"ecu_type,omitempty"`

	// SoftwareVersion is the reported calibration software version
	SoftwareVersion string `json:"software_version,omitempty"`

	// HardwareVersion is the reported hardware revision
	HardwareVersion string `json:"hardware_version,omitempty"`

	// Parameters is an arbitrary key/value map of ECU parameters
	Parameters map[string]interface{} `json:"parameters,omitempty"`

	// CreatedAt is stamped by the store on insert
	CreatedAt time.Time `json:"created_at"`

	// ModifiedAt is stamped by the store on update
	ModifiedAt time.Time `json:"modified_at,omitempty"`
}
