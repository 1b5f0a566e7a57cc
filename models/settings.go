package models

// Settings is the flat key→value map of installation-wide settings.
// It is global to the workstation, not per-vehicle.
type Settings map[string]interface{}

// DefaultSettings returns the compiled-in settings used on first run and
// as the fallback when the settings document is missing or unreadable.
func DefaultSettings() Settings {
	return Settings{
		"units":              "metric",
		"theme":              "dark",
		"auto_connect":       false,
		"default_baudrate":   500000,
		"log_retention":      1000,
		"telemetry_interval": 250,
	}
}
