package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tunedeck.org/tunedeck/models"
)

// listProfiles handles GET /api/v1/vehicles/:id/profiles
func (s *Server) listProfiles(c echo.Context) error {
	vehicleID := c.Param("id")

	if _, err := s.store.GetVehicle(vehicleID); err != nil {
		return storeError(err)
	}

	profiles, err := s.store.GetECUProfiles(vehicleID)
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, ProfilesResponse{
		Count:    len(profiles),
		Profiles: profiles,
	})
}

// createProfile handles POST /api/v1/vehicles/:id/profiles
func (s *Server) createProfile(c echo.Context) error {
	vehicleID := c.Param("id")

	var profile models.ECUProfile
	if err := c.Bind(&profile); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	profile.VehicleID = vehicleID
	if result := s.validator.Validate(&profile); !result.Valid {
		return ValidationFailedError("profile validation failed", fieldErrorMap(result))
	}

	if _, err := s.store.AddECUProfile(vehicleID, &profile); err != nil {
		return storeError(err)
	}

	s.broadcast(EventProfileAdded, profile)

	return c.JSON(http.StatusCreated, profile)
}

// updateProfile handles PUT /api/v1/profiles/:id
func (s *Server) updateProfile(c echo.Context) error {
	id := c.Param("id")

	var patch models.ECUProfile
	if err := c.Bind(&patch); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	updated, err := s.store.UpdateECUProfile(id, &patch)
	if err != nil {
		return storeError(err)
	}
	if !updated {
		return NotFoundError("profile", id)
	}

	s.broadcast(EventProfileUpdated, map[string]string{"id": id})

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "profile updated successfully",
		ID:      id,
	})
}
