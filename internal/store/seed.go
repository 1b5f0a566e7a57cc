package store

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"tunedeck.org/tunedeck/models"
)

//go:embed seed.yaml
var seedCatalog []byte

// seedVehicle mirrors models.Vehicle for the embedded YAML catalog.
type seedVehicle struct {
	ID            string   `yaml:"id"`
	Make          string   `yaml:"make"`
	Model         string   `yaml:"model"`
	Year          int      `yaml:"year"`
	Engines       []string `yaml:"engines"`
	Transmissions []string `yaml:"transmissions"`
	DriveType     string   `yaml:"drive_type"`
	FuelType      string   `yaml:"fuel_type"`
	ECUTypes      []string `yaml:"ecu_types"`
	Protocol      string   `yaml:"protocol"`
	Systems       []string `yaml:"systems"`
	Limits        struct {
		MaxRPM             float64 `yaml:"max_rpm"`
		MaxTempC           float64 `yaml:"max_temp_c"`
		MinFuelPressurePSI float64 `yaml:"min_fuel_pressure_psi"`
		MaxBoostPSI        float64 `yaml:"max_boost_psi"`
	} `yaml:"limits"`
}

// seedVehicles parses the embedded catalog into vehicle documents. It is
// only consulted when the vehicle document does not exist yet.
func seedVehicles() ([]*models.Vehicle, error) {
	var catalog struct {
		Vehicles []seedVehicle `yaml:"vehicles"`
	}
	if err := yaml.Unmarshal(seedCatalog, &catalog); err != nil {
		return nil, fmt.Errorf("invalid seed catalog: %w", err)
	}

	vehicles := make([]*models.Vehicle, 0, len(catalog.Vehicles))
	for _, sv := range catalog.Vehicles {
		v := &models.Vehicle{
			ID:            sv.ID,
			Make:          sv.Make,
			Model:         sv.Model,
			Year:          sv.Year,
			Engines:       sv.Engines,
			Transmissions: sv.Transmissions,
			DriveType:     sv.DriveType,
			FuelType:      sv.FuelType,
			ECUTypes:      sv.ECUTypes,
			Protocol:      sv.Protocol,
			Systems:       sv.Systems,
			Limits: models.TuningLimits{
				MaxRPM:             sv.Limits.MaxRPM,
				MaxTempC:           sv.Limits.MaxTempC,
				MinFuelPressurePSI: sv.Limits.MinFuelPressurePSI,
				MaxBoostPSI:        sv.Limits.MaxBoostPSI,
			},
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}
