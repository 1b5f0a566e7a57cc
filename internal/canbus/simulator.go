// Package canbus provides the in-memory CAN bus simulator. It models
// named buses and a global bounded message buffer so higher-level tooling
// can be exercised without real hardware. All state is owned by a
// Simulator instance constructed explicitly; nothing lives at package
// level and everything resets on process restart.
package canbus

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"tunedeck.org/tunedeck/models"
)

// DefaultBufferSize is the bound on the global message buffer.
const DefaultBufferSize = 100

// maxDLC is the CAN 2.0 payload limit.
const maxDLC = 8

// ErrUnknownBus is returned when a message targets a bus that was never
// initialized.
var ErrUnknownBus = errors.New("unknown bus")

// Simulator owns the buses and the shared message buffer. A single mutex
// guards both, since sends and receives may arrive concurrently from
// independent bus identifiers.
type Simulator struct {
	mu       sync.Mutex
	buses    map[string]*models.CANBus
	messages []models.CANMessage
	capacity int
	rng      *rand.Rand
}

// New creates a simulator with the given buffer capacity. A capacity of 0
// or less falls back to DefaultBufferSize.
func New(capacity int) *Simulator {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	return &Simulator{
		buses:    make(map[string]*models.CANBus),
		messages: make([]models.CANMessage, 0, capacity),
		capacity: capacity,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// InitializeBus creates or re-initializes a named bus. Re-initializing an
// existing bus replaces its state and resets both counters to zero.
func (s *Simulator) InitializeBus(id string, baudrate int) (*models.CANBus, error) {
	if id == "" {
		return nil, fmt.Errorf("bus id is required")
	}
	if baudrate <= 0 {
		return nil, fmt.Errorf("invalid baudrate %d", baudrate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bus := &models.CANBus{
		ID:       id,
		Baudrate: baudrate,
		Status:   models.BusStatusActive,
	}
	s.buses[id] = bus

	snapshot := *bus
	return &snapshot, nil
}

// SendMessage records a frame on the named bus, evicting the oldest
// buffered message once the buffer is full, and returns the stored message
// with its server-assigned timestamp.
func (s *Simulator) SendMessage(busID string, canID uint32, payload []byte) (*models.CANMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bus, ok := s.buses[busID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBus, busID)
	}

	dlc := len(payload)
	if dlc > maxDLC {
		dlc = maxDLC
		payload = payload[:maxDLC]
	}

	data := make([]byte, dlc)
	copy(data, payload)

	msg := models.CANMessage{
		Timestamp: time.Now().UTC(),
		BusID:     busID,
		CANID:     canID,
		Data:      data,
		DLC:       uint8(dlc),
	}

	s.messages = append(s.messages, msg)
	if len(s.messages) > s.capacity {
		s.messages = s.messages[len(s.messages)-s.capacity:]
	}

	bus.SentCount++

	return &msg, nil
}

// ReceiveMessages returns the buffered frames matching (busID, canID) in
// insertion order. The read is non-consuming: matched messages stay
// available to subsequent calls. The bus's received counter is set to the
// match count as a derived debug statistic.
func (s *Simulator) ReceiveMessages(busID string, canID uint32) ([]models.CANMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bus, ok := s.buses[busID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBus, busID)
	}

	matched := []models.CANMessage{}
	for _, msg := range s.messages {
		if msg.BusID == busID && msg.CANID == canID {
			matched = append(matched, msg)
		}
	}

	bus.ReceivedCount = len(matched)

	return matched, nil
}

// BusStatus returns a snapshot of one bus and the current buffer depth.
func (s *Simulator) BusStatus(busID string) (*models.BusStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bus, ok := s.buses[busID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBus, busID)
	}

	return &models.BusStats{
		Bus:          *bus,
		BufferedMsgs: len(s.messages),
	}, nil
}

// Buses returns snapshots of all initialized buses.
func (s *Simulator) Buses() []models.CANBus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CANBus, 0, len(s.buses))
	for _, bus := range s.buses {
		out = append(out, *bus)
	}
	return out
}

// AllMessages returns the buffered messages across all buses, oldest
// first. At most the last `capacity` messages are retained regardless of
// how many have ever been sent.
func (s *Simulator) AllMessages() []models.CANMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CANMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// SimulateFrame generates a synthetic snapshot of live vehicle data for
// demos and testing. It is independent of recorded bus traffic.
func (s *Simulator) SimulateFrame() *models.SimulatedFrame {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := &models.SimulatedFrame{Timestamp: time.Now().UTC()}

	frame.Engine.RPM = 750 + s.rng.Float64()*5500
	frame.Engine.CoolantTempC = 78 + s.rng.Float64()*26
	frame.Engine.OilTempC = 85 + s.rng.Float64()*35
	frame.Engine.ThrottlePct = s.rng.Float64() * 100
	frame.Engine.BoostPSI = s.rng.Float64() * 18

	frame.Transmission.Gear = 1 + s.rng.Intn(6)
	frame.Transmission.FluidTempC = 70 + s.rng.Float64()*30

	frame.Sensors.Lambda = 0.92 + s.rng.Float64()*0.16
	frame.Sensors.FuelPressurePSI = 42 + s.rng.Float64()*18
	frame.Sensors.IntakeAirTempC = 18 + s.rng.Float64()*30
	frame.Sensors.BatteryVoltage = 13.2 + s.rng.Float64()*1.2
	frame.Sensors.VehicleSpeedKPH = s.rng.Float64() * 180
	frame.Sensors.AmbientPressKPa = 98 + s.rng.Float64()*5

	return frame
}
