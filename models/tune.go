package models

import "time"

// Tune categories. Custom covers anything outside the canned stages.
const (
	TuneCategoryStock   = "stock"
	TuneCategoryStage1  = "stage1"
	TuneCategoryStage2  = "stage2"
	TuneCategoryEconomy = "economy"
	TuneCategoryCustom  = "custom"
)

// Tune is a saved calibration entry for a vehicle. The raw calibration
// payload is not stored here, only its size and checksum; tunes are
// append-only per vehicle.
type Tune struct {
	// ID is the unique tune identifier
	ID string `json:"id"`

	// VehicleID is the owning vehicle (required, must exist)
	VehicleID string `json:"vehicle_id" validate:"required"`

	// Name is the human-readable tune name (required)
	Name string `json:"name" validate:"required"`

	// Description is an optional free-form description
	Description string `json:"description,omitempty"`

	// Category is one of stock, stage1, stage2, economy, custom
	Category string `json:"category" validate:"omitempty,oneof=stock stage1 stage2 economy custom"`

	// Calibration references the calibration payload
	Calibration CalibrationRef `json:"calibration"`

	// SavedAt is stamped by the store on insert
	SavedAt time.Time `json:"saved_at"`
}

// CalibrationRef points at a calibration binary without embedding it.
type CalibrationRef struct {
	// SizeBytes is the payload size in bytes
	SizeBytes int64 `json:"size_bytes"`

	// SHA256 is the hex-encoded payload checksum
	SHA256 string `json:"sha256,omitempty"`
}
