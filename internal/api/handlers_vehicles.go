package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tunedeck.org/tunedeck/models"
)

// listVehicles handles GET /api/v1/vehicles
func (s *Server) listVehicles(c echo.Context) error {
	limit, offset := parsePagination(c)

	var (
		vehicles []*models.Vehicle
		err      error
	)

	if manufacturer := c.QueryParam("make"); manufacturer != "" {
		vehicles, err = s.store.GetVehiclesByMake(manufacturer)
	} else {
		vehicles, err = s.store.GetVehicles()
	}
	if err != nil {
		return storeError(err)
	}

	total := len(vehicles)
	vehicles = paginateSlice(vehicles, limit, offset)

	return c.JSON(http.StatusOK, VehiclesResponse{
		Count:    len(vehicles),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
		Vehicles: vehicles,
	})
}

// getVehicle handles GET /api/v1/vehicles/:id
func (s *Server) getVehicle(c echo.Context) error {
	vehicle, err := s.store.GetVehicle(c.Param("id"))
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, vehicle)
}

// createVehicle handles POST /api/v1/vehicles
func (s *Server) createVehicle(c echo.Context) error {
	var vehicle models.Vehicle
	if err := c.Bind(&vehicle); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	if result := s.validator.Validate(&vehicle); !result.Valid {
		return ValidationFailedError("vehicle validation failed", fieldErrorMap(result))
	}

	if _, err := s.store.AddVehicle(&vehicle); err != nil {
		return storeError(err)
	}

	s.broadcast(EventVehicleAdded, vehicle)

	return c.JSON(http.StatusCreated, vehicle)
}

// updateVehicle handles PUT /api/v1/vehicles/:id
func (s *Server) updateVehicle(c echo.Context) error {
	id := c.Param("id")

	var patch models.Vehicle
	if err := c.Bind(&patch); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	updated, err := s.store.UpdateVehicle(id, &patch)
	if err != nil {
		return storeError(err)
	}
	if !updated {
		return NotFoundError("vehicle", id)
	}

	vehicle, err := s.store.GetVehicle(id)
	if err != nil {
		return storeError(err)
	}

	s.broadcast(EventVehicleUpdated, vehicle)

	return c.JSON(http.StatusOK, vehicle)
}

// listManufacturers handles GET /api/v1/manufacturers
func (s *Server) listManufacturers(c echo.Context) error {
	manufacturers, err := s.store.GetManufacturers()
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, ManufacturersResponse{
		Count:         len(manufacturers),
		Manufacturers: manufacturers,
	})
}
