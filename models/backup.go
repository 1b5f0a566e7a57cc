package models

import "time"

// BackupInfo describes one immutable snapshot of the store's documents.
// The ID is the snapshot's creation timestamp in 20060102-150405 form,
// which keeps backup directories lexicographically sortable.
type BackupInfo struct {
	// ID is the sortable timestamp identifier
	ID string `json:"id"`

	// CreatedAt is the snapshot creation time
	CreatedAt time.Time `json:"created_at"`

	// Files lists the document files captured in the snapshot
	Files []string `json:"files"`
}
