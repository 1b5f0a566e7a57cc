package store

import (
	"tunedeck.org/tunedeck/models"
)

// GetSetting returns the value stored under key.
func (s *Store) GetSetting(key string) (interface{}, error) {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()

	var settings models.Settings
	if err := s.readDocument(SettingsFile, &settings); err != nil {
		return nil, err
	}

	value, ok := settings[key]
	if !ok {
		return nil, &NotFoundError{Resource: "setting", ID: key}
	}

	return value, nil
}

// SetSetting stores value under key, creating or replacing it.
func (s *Store) SetSetting(key string, value interface{}) error {
	if key == "" {
		return &ValidationError{Field: "key", Message: "is required"}
	}

	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	var settings models.Settings
	if err := s.readDocument(SettingsFile, &settings); err != nil {
		// A missing or corrupt settings document is recoverable: start
		// from the compiled-in defaults and persist the new value.
		settings = models.DefaultSettings()
	}

	settings[key] = value

	return s.writeDocument(SettingsFile, settings)
}

// GetAllSettings returns the full settings map. When the settings document
// is missing or corrupt it falls back to the compiled-in defaults; this is
// the one place the store defaults on corruption, per the installation
// contract that settings must always resolve.
func (s *Store) GetAllSettings() models.Settings {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()

	var settings models.Settings
	if err := s.readDocument(SettingsFile, &settings); err != nil {
		return models.DefaultSettings()
	}

	return settings
}
