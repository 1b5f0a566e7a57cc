package api

import (
	"tunedeck.org/tunedeck/models"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// VehiclesResponse represents a paginated list of vehicles.
type VehiclesResponse struct {
	Count    int               `json:"count"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Vehicles []*models.Vehicle `json:"vehicles"`
}

// ManufacturersResponse represents the distinct manufacturer list.
type ManufacturersResponse struct {
	Count         int      `json:"count"`
	Manufacturers []string `json:"manufacturers"`
}

// ProfilesResponse represents a list of ECU profiles.
type ProfilesResponse struct {
	Count    int                  `json:"count"`
	Profiles []*models.ECUProfile `json:"profiles"`
}

// TunesResponse represents a list of tunes.
type TunesResponse struct {
	Count int            `json:"count"`
	Tunes []*models.Tune `json:"tunes"`
}

// LogsResponse represents a list of log entries, most recent first.
type LogsResponse struct {
	Count int                `json:"count"`
	Logs  []*models.LogEntry `json:"logs"`
}

// BackupsResponse represents the available snapshot list, newest first.
type BackupsResponse struct {
	Count   int      `json:"count"`
	Backups []string `json:"backups"`
}

// BusesResponse represents the initialized bus list.
type BusesResponse struct {
	Count int             `json:"count"`
	Buses []models.CANBus `json:"buses"`
}

// MessagesResponse represents matched CAN messages.
type MessagesResponse struct {
	Count    int                 `json:"count"`
	Messages []models.CANMessage `json:"messages"`
}

// AlertsResponse represents the active diagnostic alerts.
type AlertsResponse struct {
	Count  int            `json:"count"`
	Alerts []models.Alert `json:"alerts"`
}

// HistoryResponse represents diagnostic history, most recent first.
type HistoryResponse struct {
	Count   int                        `json:"count"`
	Results []*models.DiagnosticResult `json:"results"`
}

// WebSocketMessage represents a message sent via WebSocket.
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data"`
}
