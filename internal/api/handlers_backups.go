package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tunedeck.org/tunedeck/internal/backup"
)

// listBackups handles GET /api/v1/backups
func (s *Server) listBackups(c echo.Context) error {
	backups, err := s.backups.List()
	if err != nil {
		return InternalError("failed to list backups", err.Error())
	}

	return c.JSON(http.StatusOK, BackupsResponse{
		Count:   len(backups),
		Backups: backups,
	})
}

// createBackup handles POST /api/v1/backups
func (s *Server) createBackup(c echo.Context) error {
	info, err := s.backups.Create()
	if err != nil {
		return InternalError("failed to create backup", err.Error())
	}

	s.metrics.BackupsCreated.Inc()
	s.broadcast(EventBackupCreated, info)

	return c.JSON(http.StatusCreated, info)
}

// restoreBackup handles POST /api/v1/backups/:id/restore
func (s *Server) restoreBackup(c echo.Context) error {
	id := c.Param("id")

	if err := s.backups.Restore(id); err != nil {
		if errors.Is(err, backup.ErrBackupNotFound) {
			return NotFoundError("backup", id)
		}
		return InternalError("failed to restore backup", err.Error())
	}

	s.metrics.BackupsRestored.Inc()
	s.broadcast(EventBackupRestored, map[string]string{"id": id})

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "backup restored successfully",
		ID:      id,
	})
}
