package store

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"tunedeck.org/tunedeck/models"
)

// GetVehicles returns all vehicles in the catalog.
func (s *Store) GetVehicles() ([]*models.Vehicle, error) {
	s.vehiclesMu.RLock()
	defer s.vehiclesMu.RUnlock()

	return s.loadVehicles()
}

// GetVehicle returns the vehicle with the given ID.
func (s *Store) GetVehicle(id string) (*models.Vehicle, error) {
	s.vehiclesMu.RLock()
	defer s.vehiclesMu.RUnlock()

	vehicles, err := s.loadVehicles()
	if err != nil {
		return nil, err
	}

	for _, v := range vehicles {
		if v.ID == id {
			return v, nil
		}
	}

	return nil, &NotFoundError{Resource: "vehicle", ID: id}
}

// GetVehiclesByMake returns all vehicles from one manufacturer. The match
// is case-insensitive.
func (s *Store) GetVehiclesByMake(manufacturer string) ([]*models.Vehicle, error) {
	s.vehiclesMu.RLock()
	defer s.vehiclesMu.RUnlock()

	vehicles, err := s.loadVehicles()
	if err != nil {
		return nil, err
	}

	matched := []*models.Vehicle{}
	for _, v := range vehicles {
		if strings.EqualFold(v.Make, manufacturer) {
			matched = append(matched, v)
		}
	}

	return matched, nil
}

// GetManufacturers returns the sorted set of manufacturer names present in
// the catalog.
func (s *Store) GetManufacturers() ([]string, error) {
	s.vehiclesMu.RLock()
	defer s.vehiclesMu.RUnlock()

	vehicles, err := s.loadVehicles()
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	names := []string{}
	for _, v := range vehicles {
		if !seen[v.Make] {
			seen[v.Make] = true
			names = append(names, v.Make)
		}
	}
	sort.Strings(names)

	return names, nil
}

// AddVehicle appends a vehicle to the catalog and returns its ID. An ID is
// generated when the caller does not supply one. Make and Model are
// required.
func (s *Store) AddVehicle(v *models.Vehicle) (string, error) {
	if v.Make == "" {
		return "", &ValidationError{Field: "make", Message: "is required"}
	}
	if v.Model == "" {
		return "", &ValidationError{Field: "model", Message: "is required"}
	}

	s.vehiclesMu.Lock()
	defer s.vehiclesMu.Unlock()

	vehicles, err := s.loadVehicles()
	if err != nil {
		return "", err
	}

	if v.ID == "" {
		v.ID = "vehicle-" + uuid.NewString()
	}
	for _, existing := range vehicles {
		if existing.ID == v.ID {
			return "", &ValidationError{Field: "id", Message: "already exists"}
		}
	}

	vehicles = append(vehicles, v)
	if err := s.writeDocument(VehiclesFile, vehicles); err != nil {
		return "", err
	}

	return v.ID, nil
}

// UpdateVehicle merges patch onto the stored vehicle. Identity fields are
// never changed. It returns false when the vehicle does not exist.
func (s *Store) UpdateVehicle(id string, patch *models.Vehicle) (bool, error) {
	s.vehiclesMu.Lock()
	defer s.vehiclesMu.Unlock()

	vehicles, err := s.loadVehicles()
	if err != nil {
		return false, err
	}

	for _, v := range vehicles {
		if v.ID == id {
			v.Merge(patch)
			if err := s.writeDocument(VehiclesFile, vehicles); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	return false, nil
}

// loadVehicles reads the vehicle document. Callers must hold vehiclesMu.
func (s *Store) loadVehicles() ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle
	if err := s.readDocument(VehiclesFile, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}
