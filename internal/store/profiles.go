package store

import (
	"time"

	"github.com/google/uuid"

	"tunedeck.org/tunedeck/models"
)

// GetECUProfiles returns all ECU profiles belonging to a vehicle, in
// insertion order.
func (s *Store) GetECUProfiles(vehicleID string) ([]*models.ECUProfile, error) {
	s.profilesMu.RLock()
	defer s.profilesMu.RUnlock()

	profiles, err := s.loadProfiles()
	if err != nil {
		return nil, err
	}

	matched := []*models.ECUProfile{}
	for _, p := range profiles {
		if p.VehicleID == vehicleID {
			matched = append(matched, p)
		}
	}

	return matched, nil
}

// AddECUProfile appends a profile to a vehicle's profile list, stamping the
// ID and creation time. A profile referencing an unknown vehicle is
// rejected with a ValidationError.
func (s *Store) AddECUProfile(vehicleID string, p *models.ECUProfile) (string, error) {
	if p.Name == "" {
		return "", &ValidationError{Field: "name", Message: "is required"}
	}

	if _, err := s.GetVehicle(vehicleID); err != nil {
		if IsNotFound(err) {
			return "", &ValidationError{Field: "vehicle_id", Message: "references unknown vehicle " + vehicleID}
		}
		return "", err
	}

	s.profilesMu.Lock()
	defer s.profilesMu.Unlock()

	profiles, err := s.loadProfiles()
	if err != nil {
		return "", err
	}

	p.ID = "profile-" + uuid.NewString()
	p.VehicleID = vehicleID
	p.CreatedAt = time.Now().UTC()

	profiles = append(profiles, p)
	if err := s.writeDocument(ProfilesFile, profiles); err != nil {
		return "", err
	}

	return p.ID, nil
}

// UpdateECUProfile overwrites a profile's mutable fields in place and
// stamps the modification time. Profile history is not kept.
func (s *Store) UpdateECUProfile(id string, patch *models.ECUProfile) (bool, error) {
	s.profilesMu.Lock()
	defer s.profilesMu.Unlock()

	profiles, err := s.loadProfiles()
	if err != nil {
		return false, err
	}

	for _, p := range profiles {
		if p.ID == id {
			if patch.Name != "" {
				p.Name = patch.Name
			}
			if patch.ECUType != "" {
				p.ECUType = patch.ECUType
			}
			if patch.SoftwareVersion != "" {
				p.SoftwareVersion = patch.SoftwareVersion
			}
			if patch.HardwareVersion != "" {
				p.HardwareVersion = patch.HardwareVersion
			}
			if patch.Parameters != nil {
				p.Parameters = patch.Parameters
			}
			p.ModifiedAt = time.Now().UTC()

			if err := s.writeDocument(ProfilesFile, profiles); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	return false, nil
}

// GetAllECUProfiles returns every profile across all vehicles.
func (s *Store) GetAllECUProfiles() ([]*models.ECUProfile, error) {
	s.profilesMu.RLock()
	defer s.profilesMu.RUnlock()

	return s.loadProfiles()
}

// RemoveECUProfiles deletes the profiles with the given IDs and returns
// how many were removed.
func (s *Store) RemoveECUProfiles(ids []string) (int, error) {
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}

	s.profilesMu.Lock()
	defer s.profilesMu.Unlock()

	profiles, err := s.loadProfiles()
	if err != nil {
		return 0, err
	}

	kept := profiles[:0]
	removed := 0
	for _, p := range profiles {
		if drop[p.ID] {
			removed++
			continue
		}
		kept = append(kept, p)
	}

	if removed == 0 {
		return 0, nil
	}

	if err := s.writeDocument(ProfilesFile, kept); err != nil {
		return 0, err
	}

	return removed, nil
}

// loadProfiles reads the profile document. Callers must hold profilesMu.
func (s *Store) loadProfiles() ([]*models.ECUProfile, error) {
	var profiles []*models.ECUProfile
	if err := s.readDocument(ProfilesFile, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
