package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tunedeck.org/tunedeck/internal/obd"
	"tunedeck.org/tunedeck/models"
)

// runDiagnostic handles POST /api/v1/diagnostics/run/:id. The request
// body carries the telemetry sample to evaluate against the vehicle's
// tuning limits.
func (s *Server) runDiagnostic(c echo.Context) error {
	var sample models.TelemetrySample
	if err := c.Bind(&sample); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	result, err := s.diag.RunFullDiagnostic(c.Param("id"), sample)
	if err != nil {
		return storeError(err)
	}

	s.metrics.DiagnosticsTotal.Inc()
	s.broadcast(EventDiagCompleted, result)

	return c.JSON(http.StatusOK, result)
}

// listAlerts handles GET /api/v1/diagnostics/alerts
func (s *Server) listAlerts(c echo.Context) error {
	alerts := s.diag.ActiveAlerts()

	return c.JSON(http.StatusOK, AlertsResponse{
		Count:  len(alerts),
		Alerts: alerts,
	})
}

// diagnosticHistory handles GET /api/v1/diagnostics/history
func (s *Server) diagnosticHistory(c echo.Context) error {
	limit := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 0 {
			return BadRequestError("invalid limit parameter", "limit must be a non-negative integer")
		}
		limit = parsed
	}

	results := s.diag.History(limit)

	return c.JSON(http.StatusOK, HistoryResponse{
		Count:   len(results),
		Results: results,
	})
}

// clearDiagnosticHistory handles DELETE /api/v1/diagnostics/history
func (s *Server) clearDiagnosticHistory(c echo.Context) error {
	s.diag.ClearHistory()

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "diagnostic history cleared",
	})
}

// listPIDs handles GET /api/v1/obd/pids
func (s *Server) listPIDs(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count": len(obd.PIDCodes()),
		"pids":  obd.ListPIDs(),
	})
}

// getPID handles GET /api/v1/obd/pids/:code
func (s *Server) getPID(c echo.Context) error {
	code := c.Param("code")

	def, ok := obd.GetPID(code)
	if !ok {
		return NotFoundError("PID", code)
	}

	return c.JSON(http.StatusOK, def)
}

// listDTCs handles GET /api/v1/obd/dtcs
func (s *Server) listDTCs(c echo.Context) error {
	dtcs := obd.ListDTCs()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count": len(dtcs),
		"dtcs":  dtcs,
	})
}

// getDTC handles GET /api/v1/obd/dtcs/:code
func (s *Server) getDTC(c echo.Context) error {
	code := c.Param("code")

	description, ok := obd.GetDTC(code)
	if !ok {
		return NotFoundError("DTC", code)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"code":        code,
		"description": description,
	})
}
