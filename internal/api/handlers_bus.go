package api

import (
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tunedeck.org/tunedeck/internal/canbus"
)

// listBuses handles GET /api/v1/bus
func (s *Server) listBuses(c echo.Context) error {
	buses := s.bus.Buses()

	return c.JSON(http.StatusOK, BusesResponse{
		Count: len(buses),
		Buses: buses,
	})
}

// initBus handles POST /api/v1/bus/:id/init
func (s *Server) initBus(c echo.Context) error {
	var body struct {
		Baudrate int `json:"baudrate"`
	}
	if err := c.Bind(&body); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	bus, err := s.bus.InitializeBus(c.Param("id"), body.Baudrate)
	if err != nil {
		return BadRequestError("failed to initialize bus", err.Error())
	}

	return c.JSON(http.StatusCreated, bus)
}

// busStatus handles GET /api/v1/bus/:id/status
func (s *Server) busStatus(c echo.Context) error {
	stats, err := s.bus.BusStatus(c.Param("id"))
	if err != nil {
		if errors.Is(err, canbus.ErrUnknownBus) {
			return NotFoundError("bus", c.Param("id"))
		}
		return InternalError("failed to read bus status", err.Error())
	}

	return c.JSON(http.StatusOK, stats)
}

// sendMessage handles POST /api/v1/bus/:id/messages. The payload is
// hex-encoded; at most eight data bytes are kept, matching classic CAN.
func (s *Server) sendMessage(c echo.Context) error {
	var body struct {
		CANID   string `json:"can_id"`
		Payload string `json:"payload"`
	}
	if err := c.Bind(&body); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	canID, err := parseCANID(body.CANID)
	if err != nil {
		return BadRequestError("invalid can_id", err.Error())
	}

	payload, err := hex.DecodeString(body.Payload)
	if err != nil {
		return BadRequestError("invalid payload", "payload must be a hex-encoded byte string")
	}

	msg, err := s.bus.SendMessage(c.Param("id"), canID, payload)
	if err != nil {
		if errors.Is(err, canbus.ErrUnknownBus) {
			return NotFoundError("bus", c.Param("id"))
		}
		return BadRequestError("failed to send message", err.Error())
	}

	s.metrics.BusMessagesSent.Inc()
	s.broadcast(EventBusMessage, msg)

	return c.JSON(http.StatusCreated, msg)
}

// receiveMessages handles GET /api/v1/bus/:id/messages?can_id=0x7E8.
// Reads are non-consuming; repeated polls return the same matches while
// they remain in the buffer.
func (s *Server) receiveMessages(c echo.Context) error {
	canID, err := parseCANID(c.QueryParam("can_id"))
	if err != nil {
		return BadRequestError("invalid can_id", err.Error())
	}

	messages, err := s.bus.ReceiveMessages(c.Param("id"), canID)
	if err != nil {
		if errors.Is(err, canbus.ErrUnknownBus) {
			return NotFoundError("bus", c.Param("id"))
		}
		return InternalError("failed to receive messages", err.Error())
	}

	return c.JSON(http.StatusOK, MessagesResponse{
		Count:    len(messages),
		Messages: messages,
	})
}

// allMessages handles GET /api/v1/bus/messages. Returns the bounded
// global buffer across all buses, oldest first.
func (s *Server) allMessages(c echo.Context) error {
	messages := s.bus.AllMessages()

	return c.JSON(http.StatusOK, MessagesResponse{
		Count:    len(messages),
		Messages: messages,
	})
}

// simulateFrame handles POST /api/v1/bus/simulate
func (s *Server) simulateFrame(c echo.Context) error {
	frame := s.bus.SimulateFrame()

	s.broadcast(EventBusFrame, frame)

	return c.JSON(http.StatusOK, frame)
}

// parseCANID accepts decimal or 0x-prefixed hex CAN identifiers.
func parseCANID(raw string) (uint32, error) {
	if raw == "" {
		return 0, errors.New("can_id is required")
	}

	parsed, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return 0, errors.New("can_id must be a decimal or 0x-prefixed hex identifier")
	}

	return uint32(parsed), nil
}
