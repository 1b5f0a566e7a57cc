package store

import (
	"time"

	"github.com/google/uuid"

	"tunedeck.org/tunedeck/models"
)

// GetTunes returns all tunes saved for a vehicle, in insertion order.
func (s *Store) GetTunes(vehicleID string) ([]*models.Tune, error) {
	s.tunesMu.RLock()
	defer s.tunesMu.RUnlock()

	tunes, err := s.loadTunes()
	if err != nil {
		return nil, err
	}

	matched := []*models.Tune{}
	for _, t := range tunes {
		if t.VehicleID == vehicleID {
			matched = append(matched, t)
		}
	}

	return matched, nil
}

// GetTune returns one tune belonging to a vehicle.
func (s *Store) GetTune(vehicleID, tuneID string) (*models.Tune, error) {
	s.tunesMu.RLock()
	defer s.tunesMu.RUnlock()

	tunes, err := s.loadTunes()
	if err != nil {
		return nil, err
	}

	for _, t := range tunes {
		if t.ID == tuneID && t.VehicleID == vehicleID {
			return t, nil
		}
	}

	return nil, &NotFoundError{Resource: "tune", ID: tuneID}
}

// SaveTune appends a tune for a vehicle, stamping the ID and save time.
// Tunes are append-only; a tune referencing an unknown vehicle is rejected
// with a ValidationError.
func (s *Store) SaveTune(vehicleID string, t *models.Tune) (string, error) {
	if t.Name == "" {
		return "", &ValidationError{Field: "name", Message: "is required"}
	}

	if _, err := s.GetVehicle(vehicleID); err != nil {
		if IsNotFound(err) {
			return "", &ValidationError{Field: "vehicle_id", Message: "references unknown vehicle " + vehicleID}
		}
		return "", err
	}

	s.tunesMu.Lock()
	defer s.tunesMu.Unlock()

	tunes, err := s.loadTunes()
	if err != nil {
		return "", err
	}

	t.ID = "tune-" + uuid.NewString()
	t.VehicleID = vehicleID
	if t.Category == "" {
		t.Category = models.TuneCategoryCustom
	}
	t.SavedAt = time.Now().UTC()

	tunes = append(tunes, t)
	if err := s.writeDocument(TunesFile, tunes); err != nil {
		return "", err
	}

	return t.ID, nil
}

// GetAllTunes returns every tune across all vehicles.
func (s *Store) GetAllTunes() ([]*models.Tune, error) {
	s.tunesMu.RLock()
	defer s.tunesMu.RUnlock()

	return s.loadTunes()
}

// RemoveTunes deletes the tunes with the given IDs and returns how many
// were removed.
func (s *Store) RemoveTunes(ids []string) (int, error) {
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}

	s.tunesMu.Lock()
	defer s.tunesMu.Unlock()

	tunes, err := s.loadTunes()
	if err != nil {
		return 0, err
	}

	kept := tunes[:0]
	removed := 0
	for _, t := range tunes {
		if drop[t.ID] {
			removed++
			continue
		}
		kept = append(kept, t)
	}

	if removed == 0 {
		return 0, nil
	}

	if err := s.writeDocument(TunesFile, kept); err != nil {
		return 0, err
	}

	return removed, nil
}

// loadTunes reads the tune document. Callers must hold tunesMu.
func (s *Store) loadTunes() ([]*models.Tune, error) {
	var tunes []*models.Tune
	if err := s.readDocument(TunesFile, &tunes); err != nil {
		return nil, err
	}
	return tunes, nil
}
