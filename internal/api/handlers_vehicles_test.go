package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunedeck.org/tunedeck/models"
)

func TestListVehiclesSeeded(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vehicles", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body VehiclesResponse
	decodeBody(t, rec, &body)

	assert.Equal(t, 5, body.Total)
	assert.Equal(t, 5, body.Count)
	assert.Equal(t, 100, body.Limit)
	assert.Equal(t, 0, body.Offset)
}

func TestListVehiclesByMake(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vehicles?make=BMW", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body VehiclesResponse
	decodeBody(t, rec, &body)

	require.Equal(t, 1, body.Count)
	assert.Equal(t, "M3", body.Vehicles[0].Model)
}

func TestListVehiclesPaginated(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vehicles?limit=2&offset=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body VehiclesResponse
	decodeBody(t, rec, &body)

	assert.Equal(t, 5, body.Total)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, 2, body.Limit)
	assert.Equal(t, 4, body.Offset)
}

func TestGetVehicle(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vehicles/vehicle-bmw-m3-g80", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var vehicle models.Vehicle
	decodeBody(t, rec, &vehicle)

	assert.Equal(t, "BMW", vehicle.Make)
	assert.Equal(t, float64(7200), vehicle.Limits.MaxRPM)
}

func TestGetVehicleNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vehicles/vehicle-unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetVehicleRejectsShortID(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vehicles/ab", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateVehicle(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/vehicles", map[string]interface{}{
		"make":       "Audi",
		"model":      "RS3",
		"year":       2023,
		"drive_type": "AWD",
		"fuel_type":  "petrol",
		"limits": map[string]interface{}{
			"max_rpm":               7000,
			"max_temp_c":            112,
			"min_fuel_pressure_psi": 48,
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var vehicle models.Vehicle
	decodeBody(t, rec, &vehicle)
	assert.NotEmpty(t, vehicle.ID)
	assert.Equal(t, "Audi", vehicle.Make)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/vehicles", nil)
	var list VehiclesResponse
	decodeBody(t, rec, &list)
	assert.Equal(t, 6, list.Total)
}

func TestCreateVehicleValidationFailure(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/vehicles", map[string]interface{}{
		"model": "Orphan",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr APIError
	decodeBody(t, rec, &apiErr)
	assert.Contains(t, apiErr.FieldError, "make")
}

func TestCreateVehicleRejectsBadDriveType(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/vehicles", map[string]interface{}{
		"make":       "Audi",
		"model":      "RS3",
		"drive_type": "6WD",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateVehicle(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPut, "/api/v1/vehicles/vehicle-subaru-wrx-va", map[string]interface{}{
		"protocol": "CAN 1M",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var vehicle models.Vehicle
	decodeBody(t, rec, &vehicle)
	assert.Equal(t, "CAN 1M", vehicle.Protocol)
	// Identity is immutable through updates.
	assert.Equal(t, "Subaru", vehicle.Make)
}

func TestUpdateVehicleNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPut, "/api/v1/vehicles/vehicle-unknown", map[string]interface{}{
		"protocol": "K-Line",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListManufacturers(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/manufacturers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body ManufacturersResponse
	decodeBody(t, rec, &body)

	assert.Equal(t, 5, body.Count)
	assert.Contains(t, body.Manufacturers, "Toyota")
}

func TestProfileLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vehicles/vehicle-vw-golf-gti-mk8/profiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profiles ProfilesResponse
	decodeBody(t, rec, &profiles)
	require.Equal(t, 0, profiles.Count)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/vehicles/vehicle-vw-golf-gti-mk8/profiles", map[string]interface{}{
		"name":             "Bench read 1",
		"ecu_type":         "Bosch MG1CS111",
		"software_version": "0004",
		"parameters":       map[string]interface{}{"boost_target_psi": 21.5},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.ECUProfile
	decodeBody(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "vehicle-vw-golf-gti-mk8", created.VehicleID)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/vehicles/vehicle-vw-golf-gti-mk8/profiles", nil)
	decodeBody(t, rec, &profiles)
	require.Equal(t, 1, profiles.Count)

	rec = doRequest(t, s, http.MethodPut, "/api/v1/profiles/"+created.ID, map[string]interface{}{
		"software_version": "0005",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var msg MessageResponse
	decodeBody(t, rec, &msg)
	assert.Equal(t, created.ID, msg.ID)
}

func TestListProfilesUnknownVehicle(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vehicles/vehicle-unknown/profiles", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProfileNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPut, "/api/v1/profiles/profile-unknown", map[string]interface{}{
		"software_version": "0005",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProfileMissingName(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/vehicles/vehicle-vw-golf-gti-mk8/profiles", map[string]interface{}{
		"ecu_type": "Bosch MG1CS111",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr APIError
	decodeBody(t, rec, &apiErr)
	assert.Contains(t, apiErr.FieldError, "name")
}

func TestTuneLifecycle(t *testing.T) {
	s := newTestServer(t)

	checksum := strings.Repeat("ab", 32)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/vehicles/vehicle-bmw-m3-g80/tunes", map[string]interface{}{
		"name":     "Stage 1 93oct",
		"category": "stage1",
		"calibration": map[string]interface{}{
			"size_bytes": 4194304,
			"sha256":     checksum,
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Tune
	decodeBody(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.SavedAt.IsZero())

	rec = doRequest(t, s, http.MethodGet, "/api/v1/vehicles/vehicle-bmw-m3-g80/tunes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tunes TunesResponse
	decodeBody(t, rec, &tunes)
	require.Equal(t, 1, tunes.Count)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/vehicles/vehicle-bmw-m3-g80/tunes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.Tune
	decodeBody(t, rec, &fetched)
	assert.Equal(t, checksum, fetched.Calibration.SHA256)
}

func TestListTunesByCategory(t *testing.T) {
	s := newTestServer(t)

	for _, category := range []string{"stage1", "economy"} {
		rec := doRequest(t, s, http.MethodPost, "/api/v1/vehicles/vehicle-ford-f150-gen14/tunes", map[string]interface{}{
			"name":     category + " map",
			"category": category,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vehicles/vehicle-ford-f150-gen14/tunes?category=economy", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tunes TunesResponse
	decodeBody(t, rec, &tunes)
	require.Equal(t, 1, tunes.Count)
	assert.Equal(t, "economy map", tunes.Tunes[0].Name)
}

func TestListTunesRejectsUnknownCategory(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vehicles/vehicle-ford-f150-gen14/tunes?category=stage9", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTuneNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/vehicles/vehicle-bmw-m3-g80/tunes/tune-unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTuneBadChecksum(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/vehicles/vehicle-bmw-m3-g80/tunes", map[string]interface{}{
		"name": "Broken",
		"calibration": map[string]interface{}{
			"sha256": "zz",
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
