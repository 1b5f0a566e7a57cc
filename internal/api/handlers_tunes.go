package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tunedeck.org/tunedeck/models"
)

// listTunes handles GET /api/v1/vehicles/:id/tunes
func (s *Server) listTunes(c echo.Context) error {
	vehicleID := c.Param("id")

	if _, err := s.store.GetVehicle(vehicleID); err != nil {
		return storeError(err)
	}

	tunes, err := s.store.GetTunes(vehicleID)
	if err != nil {
		return storeError(err)
	}

	if category := c.QueryParam("category"); category != "" {
		matched := tunes[:0]
		for _, t := range tunes {
			if t.Category == category {
				matched = append(matched, t)
			}
		}
		tunes = matched
	}

	return c.JSON(http.StatusOK, TunesResponse{
		Count: len(tunes),
		Tunes: tunes,
	})
}

// getTune handles GET /api/v1/vehicles/:id/tunes/:tuneId
func (s *Server) getTune(c echo.Context) error {
	tune, err := s.store.GetTune(c.Param("id"), c.Param("tuneId"))
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, tune)
}

// createTune handles POST /api/v1/vehicles/:id/tunes
func (s *Server) createTune(c echo.Context) error {
	vehicleID := c.Param("id")

	var tune models.Tune
	if err := c.Bind(&tune); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	tune.VehicleID = vehicleID
	if result := s.validator.Validate(&tune); !result.Valid {
		return ValidationFailedError("tune validation failed", fieldErrorMap(result))
	}

	if _, err := s.store.SaveTune(vehicleID, &tune); err != nil {
		return storeError(err)
	}

	s.broadcast(EventTuneSaved, tune)

	return c.JSON(http.StatusCreated, tune)
}
