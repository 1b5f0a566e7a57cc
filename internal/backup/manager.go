// Package backup provides point-in-time snapshot and restore of the
// store's document set. A backup is an immutable directory named by its
// creation timestamp under <content_root>/backups/, containing copies of
// the four document files. Snapshot creation rolls back on partial
// failure, and restore stages temp files and swaps them in atomically so
// the live store can never end up half-old/half-new.
package backup

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tunedeck.org/tunedeck/internal/store"
	"tunedeck.org/tunedeck/models"
)

// BackupsDir is the snapshot directory name under the content root.
const BackupsDir = "backups"

// idFormat keeps backup IDs lexicographically sortable and filesystem-safe.
const idFormat = "20060102-150405"

// ErrBackupNotFound is returned when a restore targets a snapshot that
// does not exist.
var ErrBackupNotFound = errors.New("backup not found")

// Manager creates, lists and restores snapshots of the store's documents.
type Manager struct {
	store *store.Store
	dir   string

	// copyFile is swappable for failure injection in tests.
	copyFile func(src, dst string) error
}

// New creates a backup manager for the given store.
func New(s *store.Store) *Manager {
	return &Manager{
		store:    s,
		dir:      filepath.Join(s.ContentRoot(), BackupsDir),
		copyFile: copyFile,
	}
}

// Create takes a snapshot of the four document files and returns its
// metadata. The snapshot is all-or-nothing: if any copy fails the partial
// directory is removed before the error is returned.
func (m *Manager) Create() (*models.BackupInfo, error) {
	now := time.Now().UTC()
	id := now.Format(idFormat)

	dest := filepath.Join(m.dir, id)
	for n := 2; ; n++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		// Same-second collision; suffix keeps IDs unique and sortable.
		id = fmt.Sprintf("%s-%d", now.Format(idFormat), n)
		dest = filepath.Join(m.dir, id)
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	m.store.LockAll()
	err := m.copyDocuments(m.store.ContentRoot(), dest)
	m.store.UnlockAll()

	if err != nil {
		if rmErr := os.RemoveAll(dest); rmErr != nil {
			log.Printf("Failed to remove partial backup %s: %v", id, rmErr)
		}
		m.logEvent(models.LogTypeBackup, models.LogLevelError, fmt.Sprintf("backup %s failed: %v", id, err))
		return nil, fmt.Errorf("backup %s failed: %w", id, err)
	}

	m.logEvent(models.LogTypeBackup, models.LogLevelInfo, "created backup "+id)

	return &models.BackupInfo{
		ID:        id,
		CreatedAt: now,
		Files:     store.DocumentFiles(),
	}, nil
}

// List returns the IDs of all snapshots, most recent first.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	ids := []string{}
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	return ids, nil
}

// Restore copies a snapshot's documents back over the live store. All four
// files are staged into temp files first and only then swapped in, so a
// failure while staging leaves the live documents untouched.
func (m *Manager) Restore(id string) error {
	src := filepath.Join(m.dir, id)
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrBackupNotFound, id)
	}

	m.store.LockAll()
	defer m.store.UnlockAll()

	root := m.store.ContentRoot()

	// Stage every document before touching any live file.
	staged := map[string]string{}
	for _, name := range store.DocumentFiles() {
		tmp := filepath.Join(root, "."+name+".restore")
		if err := m.copyFile(filepath.Join(src, name), tmp); err != nil {
			for _, t := range staged {
				os.Remove(t)
			}
			os.Remove(tmp)
			m.logEvent(models.LogTypeRestore, models.LogLevelError, fmt.Sprintf("restore %s failed: %v", id, err))
			return fmt.Errorf("restore %s failed while staging %s: %w", id, name, err)
		}
		staged[name] = tmp
	}

	// Swap the staged files in. Renames within one directory do not cross
	// filesystems, so failures here are not expected in practice.
	for _, name := range store.DocumentFiles() {
		if err := os.Rename(staged[name], filepath.Join(root, name)); err != nil {
			m.logEvent(models.LogTypeRestore, models.LogLevelError, fmt.Sprintf("restore %s failed: %v", id, err))
			return fmt.Errorf("restore %s failed while swapping %s: %w", id, name, err)
		}
	}

	m.logEvent(models.LogTypeRestore, models.LogLevelInfo, "restored backup "+id)
	return nil
}

// copyDocuments copies the four document files from root into dest,
// stopping at the first failure.
func (m *Manager) copyDocuments(root, dest string) error {
	for _, name := range store.DocumentFiles() {
		if err := m.copyFile(filepath.Join(root, name), filepath.Join(dest, name)); err != nil {
			return fmt.Errorf("failed to copy %s: %w", name, err)
		}
	}
	return nil
}

// logEvent records a backup/restore event through the store's log. Logging
// failures are reported but never mask the primary outcome.
func (m *Manager) logEvent(eventType, level, message string) {
	_, err := m.store.AddLog(&models.LogEntry{Type: eventType, Level: level, Message: message})
	if err != nil {
		log.Printf("Failed to write %s log entry: %v", eventType, err)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	return out.Close()
}
