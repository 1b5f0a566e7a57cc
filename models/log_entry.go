package models

import "time"

// Log entry types written by the core subsystems.
const (
	LogTypeSystem  = "system"
	LogTypeBackup  = "backup"
	LogTypeRestore = "restore"
	LogTypeDiag    = "diagnostic"
	LogTypeBus     = "bus"
)

// Log levels.
const (
	LogLevelInfo  = "info"
	LogLevelWarn  = "warning"
	LogLevelError = "error"
)

// LogEntry is one line in the workstation activity log. The log collection
// is bounded to the 1000 most recent entries; the store evicts the oldest
// entries first when the bound is exceeded.
type LogEntry struct {
	// ID is the unique entry identifier, stamped by the store
	ID string `json:"id"`

	// Timestamp is stamped by the store on insert
	Timestamp time.Time `json:"timestamp"`

	// Type classifies the event source (system, backup, restore, diagnostic, bus)
	Type string `json:"type"`

	// Level is the severity (info, warning, error)
	Level string `json:"level"`

	// Message is the human-readable event text
	Message string `json:"message"`
}
