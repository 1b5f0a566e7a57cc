package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunedeck.org/tunedeck/models"
)

func TestBackupLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/backups", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list BackupsResponse
	decodeBody(t, rec, &list)
	require.Equal(t, 0, list.Count)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/backups", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var info models.BackupInfo
	decodeBody(t, rec, &info)
	require.NotEmpty(t, info.ID)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/backups", nil)
	decodeBody(t, rec, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, info.ID, list.Backups[0])

	// Mutate the catalog, then roll back to the snapshot.
	rec = doRequest(t, s, http.MethodPost, "/api/v1/vehicles", map[string]interface{}{
		"make":  "Porsche",
		"model": "911",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/backups/"+info.ID+"/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/vehicles", nil)
	var vehicles VehiclesResponse
	decodeBody(t, rec, &vehicles)
	assert.Equal(t, 5, vehicles.Total)
}

func TestRestoreBackupNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/backups/20200101-000000/restore", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAllSettings(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var settings models.Settings
	decodeBody(t, rec, &settings)
	assert.Equal(t, "metric", settings["units"])
	assert.Equal(t, "dark", settings["theme"])
}

func TestSetAndGetSetting(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPut, "/api/v1/settings/theme", map[string]interface{}{
		"value": "light",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/settings/theme", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "theme", body["key"])
	assert.Equal(t, "light", body["value"])
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/settings/no-such-key", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetSettingRequiresValue(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPut, "/api/v1/settings/theme", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListLogs(t *testing.T) {
	s := newTestServer(t)

	// Backup creation and diagnostic runs both log.
	doRequest(t, s, http.MethodPost, "/api/v1/backups", nil)
	doRequest(t, s, http.MethodPost, "/api/v1/diagnostics/run/vehicle-bmw-m3-g80", healthySample())

	rec := doRequest(t, s, http.MethodGet, "/api/v1/logs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body LogsResponse
	decodeBody(t, rec, &body)
	require.GreaterOrEqual(t, body.Count, 2)

	// Most recent first.
	assert.Equal(t, models.LogTypeDiag, body.Logs[0].Type)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/logs?type="+models.LogTypeBackup, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	for _, entry := range body.Logs {
		assert.Equal(t, models.LogTypeBackup, entry.Type)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/v1/logs?limit=1", nil)
	decodeBody(t, rec, &body)
	assert.Equal(t, 1, body.Count)
}

func TestCreateLog(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/logs", map[string]interface{}{
		"message": "bench session started",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var entry models.LogEntry
	decodeBody(t, rec, &entry)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, models.LogTypeSystem, entry.Type)
	assert.Equal(t, models.LogLevelInfo, entry.Level)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/logs", map[string]interface{}{
		"type": "bus",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListLogsRejectsBadLevel(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/logs?level=verbose", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntegrityScanClean(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/integrity/scan", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, float64(100), body["health_score"])
}

func TestIntegrityRepairDryRun(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/integrity/repair", map[string]interface{}{
		"apply": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Contains(t, body, "report")
	assert.Contains(t, body, "repair")
}
