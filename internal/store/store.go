// Package store provides the persistent document store for Tunedeck.
// All durable collections (vehicles, ECU profiles, tunes, settings and
// logs) live as JSON documents under a configurable content root:
//
//	<content_root>/vehicles.json
//	<content_root>/ecu-profiles.json
//	<content_root>/tunes.json
//	<content_root>/settings.json
//	<content_root>/logs.json
//
// The store is the only component that touches durable storage. Every
// document write goes through a temp-file-then-rename sequence so a single
// collection write is all-or-nothing, and each collection is guarded by its
// own RW lock so concurrent callers cannot interleave partial writes.
// Reads return snapshots of the last committed state.
//
// New is idempotent and safe to call on every process start: it creates
// the content root, the seed vehicle catalog and the default documents if
// they are absent.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"tunedeck.org/tunedeck/models"
)

// Document file names under the content root.
const (
	VehiclesFile = "vehicles.json"
	ProfilesFile = "ecu-profiles.json"
	TunesFile    = "tunes.json"
	SettingsFile = "settings.json"
	LogsFile     = "logs.json"
)

// MaxLogEntries bounds the log collection; the oldest entries are evicted
// first once the bound is exceeded.
const MaxLogEntries = 1000

// Store is the file-backed document store rooted at a content directory.
type Store struct {
	root string

	vehiclesMu sync.RWMutex
	profilesMu sync.RWMutex
	tunesMu    sync.RWMutex
	settingsMu sync.RWMutex
	logsMu     sync.RWMutex
}

// New opens (and if necessary initializes) the store at root. Missing
// documents are created with their defaults: the embedded seed catalog for
// vehicles, compiled-in defaults for settings, and empty collections for
// profiles, tunes and logs.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("content root is required")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create content root: %w", err)
	}

	s := &Store{root: root}

	if err := s.initDefaults(); err != nil {
		return nil, err
	}

	return s, nil
}

// ContentRoot returns the directory the store's documents live in.
func (s *Store) ContentRoot() string {
	return s.root
}

// DocumentFiles returns the four snapshot-worthy document file names.
// Logs are deliberately excluded from snapshots.
func DocumentFiles() []string {
	return []string{VehiclesFile, ProfilesFile, TunesFile, SettingsFile}
}

// initDefaults creates any missing default documents. Existing documents
// are left untouched, making initialization idempotent.
func (s *Store) initDefaults() error {
	if _, err := os.Stat(s.path(VehiclesFile)); os.IsNotExist(err) {
		seed, err := seedVehicles()
		if err != nil {
			return fmt.Errorf("failed to load seed catalog: %w", err)
		}
		if err := s.writeDocument(VehiclesFile, seed); err != nil {
			return err
		}
	}

	empties := map[string]interface{}{
		ProfilesFile: []interface{}{},
		TunesFile:    []interface{}{},
		LogsFile:     []interface{}{},
	}
	for name, empty := range empties {
		if _, err := os.Stat(s.path(name)); os.IsNotExist(err) {
			if err := s.writeDocument(name, empty); err != nil {
				return err
			}
		}
	}

	if _, err := os.Stat(s.path(SettingsFile)); os.IsNotExist(err) {
		if err := s.writeDocument(SettingsFile, models.DefaultSettings()); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name)
}

// readDocument unmarshals a document into v. A missing document is
// reported via os.ErrNotExist; an unparsable one surfaces as a
// CorruptError.
func (s *Store) readDocument(name string, v interface{}) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &CorruptError{Document: name, Err: err}
	}

	return nil
}

// writeDocument marshals v and atomically replaces the named document.
// The temp file is created in the content root so the rename never
// crosses a filesystem boundary.
func (s *Store) writeDocument(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.root, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}

	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to commit %s: %w", name, err)
	}

	return nil
}

// LockAll acquires every collection write lock in a fixed order. It is
// used by the backup manager to get a consistent point-in-time view while
// staging snapshot or restore files. The blocking window is bounded by
// local disk I/O only.
func (s *Store) LockAll() {
	s.vehiclesMu.Lock()
	s.profilesMu.Lock()
	s.tunesMu.Lock()
	s.settingsMu.Lock()
}

// UnlockAll releases the locks taken by LockAll in reverse order.
func (s *Store) UnlockAll() {
	s.settingsMu.Unlock()
	s.tunesMu.Unlock()
	s.profilesMu.Unlock()
	s.vehiclesMu.Unlock()
}
