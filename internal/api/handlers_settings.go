package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// getAllSettings handles GET /api/v1/settings
func (s *Server) getAllSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.GetAllSettings())
}

// getSetting handles GET /api/v1/settings/:key
func (s *Server) getSetting(c echo.Context) error {
	key := c.Param("key")

	value, err := s.store.GetSetting(key)
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"key":   key,
		"value": value,
	})
}

// setSetting handles PUT /api/v1/settings/:key
func (s *Server) setSetting(c echo.Context) error {
	key := c.Param("key")

	var body struct {
		Value interface{} `json:"value"`
	}
	if err := c.Bind(&body); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}
	if body.Value == nil {
		return BadRequestError("value is required", "request body must carry a non-null 'value' field")
	}

	if err := s.store.SetSetting(key, body.Value); err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"key":   key,
		"value": body.Value,
	})
}
