package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tunedeck.org/tunedeck/models"
)

// listLogs handles GET /api/v1/logs. Entries come back most recent first;
// optional level and type query parameters filter the result.
func (s *Server) listLogs(c echo.Context) error {
	limit := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 0 {
			return BadRequestError("invalid limit parameter", "limit must be a non-negative integer")
		}
		limit = parsed
	}

	logs, err := s.store.GetLogs(0)
	if err != nil {
		return storeError(err)
	}

	level := c.QueryParam("level")
	logType := c.QueryParam("type")
	if level != "" || logType != "" {
		matched := []*models.LogEntry{}
		for _, entry := range logs {
			if level != "" && entry.Level != level {
				continue
			}
			if logType != "" && entry.Type != logType {
				continue
			}
			matched = append(matched, entry)
		}
		logs = matched
	}

	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}

	return c.JSON(http.StatusOK, LogsResponse{
		Count: len(logs),
		Logs:  logs,
	})
}

// createLog handles POST /api/v1/logs. Type and level default to
// system/info when absent; the store stamps the id and timestamp.
func (s *Server) createLog(c echo.Context) error {
	var entry models.LogEntry
	if err := c.Bind(&entry); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	if entry.Message == "" {
		return BadRequestError("message is required", "log entries must carry a non-empty message")
	}

	if _, err := s.store.AddLog(&entry); err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusCreated, entry)
}
