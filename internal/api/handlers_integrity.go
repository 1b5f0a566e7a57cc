package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// integrityScan handles POST /api/v1/integrity/scan
func (s *Server) integrityScan(c echo.Context) error {
	report, err := s.integrity.Scan()
	if err != nil {
		return InternalError("integrity scan failed", err.Error())
	}

	s.broadcast(EventIntegrityReport, report)

	return c.JSON(http.StatusOK, report)
}

// integrityRepair handles POST /api/v1/integrity/repair. It always runs a
// fresh scan first; pass {"apply": true} to prune orphans, otherwise the
// repair is a dry run.
func (s *Server) integrityRepair(c echo.Context) error {
	var body struct {
		Apply bool `json:"apply"`
	}
	if err := c.Bind(&body); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	report, err := s.integrity.Scan()
	if err != nil {
		return InternalError("integrity scan failed", err.Error())
	}

	result, err := s.integrity.Repair(report, body.Apply)
	if err != nil {
		return InternalError("integrity repair failed", err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"report": report,
		"repair": result,
	})
}
