package store

import (
	"time"

	"github.com/google/uuid"

	"tunedeck.org/tunedeck/models"
)

// AddLog appends a log entry, stamping its ID and timestamp, and truncates
// the collection to the MaxLogEntries most recent entries. Returns the
// generated entry ID.
func (s *Store) AddLog(entry *models.LogEntry) (string, error) {
	if entry.Type == "" {
		entry.Type = models.LogTypeSystem
	}
	if entry.Level == "" {
		entry.Level = models.LogLevelInfo
	}

	s.logsMu.Lock()
	defer s.logsMu.Unlock()

	var logs []*models.LogEntry
	if err := s.readDocument(LogsFile, &logs); err != nil {
		return "", err
	}

	entry.ID = "log-" + uuid.NewString()
	entry.Timestamp = time.Now().UTC()

	logs = append(logs, entry)
	if len(logs) > MaxLogEntries {
		logs = logs[len(logs)-MaxLogEntries:]
	}

	if err := s.writeDocument(LogsFile, logs); err != nil {
		return "", err
	}

	return entry.ID, nil
}

// GetLogs returns up to limit entries, most recent first. A limit of 0 or
// less returns all retained entries.
func (s *Store) GetLogs(limit int) ([]*models.LogEntry, error) {
	s.logsMu.RLock()
	defer s.logsMu.RUnlock()

	var logs []*models.LogEntry
	if err := s.readDocument(LogsFile, &logs); err != nil {
		return nil, err
	}

	// Reverse into most-recent-first order.
	out := make([]*models.LogEntry, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		out = append(out, logs[i])
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
