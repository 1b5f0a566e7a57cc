package models

import "time"

// Bus status values.
const (
	BusStatusActive   = "active"
	BusStatusInactive = "inactive"
)

// CANBus is one simulated bus. Buses live in memory only and reset on
// process restart.
type CANBus struct {
	// ID is the bus name (e.g. "CAN0")
	ID string `json:"id"`

	// Baudrate is the configured bit rate in bits per second
	Baudrate int `json:"baudrate"`

	// Status is the bus state (active, inactive)
	Status string `json:"status"`

	// SentCount is the number of messages sent on this bus
	SentCount int `json:"sent_count"`

	// ReceivedCount is a derived statistic: the match count of the most
	// recent receive call. It is observational, not a queue depth.
	ReceivedCount int `json:"received_count"`
}

// CANMessage is one frame recorded in the global message buffer.
type CANMessage struct {
	// Timestamp is assigned by the simulator when the message is stored
	Timestamp time.Time `json:"timestamp"`

	// BusID is the bus the message was sent on
	BusID string `json:"bus_id"`

	// CANID is the numeric arbitration ID
	CANID uint32 `json:"can_id"`

	// Data is the payload, at most 8 bytes for CAN 2.0
	Data []byte `json:"data"`

	// DLC is the data length code (len(Data), capped at 8)
	DLC uint8 `json:"dlc"`
}

// BusStats is the read-back view of a bus returned by status queries.
type BusStats struct {
	Bus          CANBus `json:"bus"`
	BufferedMsgs int    `json:"buffered_messages"`
}

// SimulatedFrame is a synthetic snapshot of live vehicle data for demo and
// testing purposes. It is generated on demand and is not derived from
// recorded bus traffic.
type SimulatedFrame struct {
	Timestamp time.Time `json:"timestamp"`

	Engine struct {
		RPM          float64 `json:"rpm"`
		CoolantTempC float64 `json:"coolant_temp_c"`
		OilTempC     float64 `json:"oil_temp_c"`
		ThrottlePct  float64 `json:"throttle_pct"`
		BoostPSI     float64 `json:"boost_psi"`
	} `json:"engine"`

	Transmission struct {
		Gear       int     `json:"gear"`
		FluidTempC float64 `json:"fluid_temp_c"`
	} `json:"transmission"`

	Sensors struct {
		Lambda           float64 `json:"lambda"`
		FuelPressurePSI  float64 `json:"fuel_pressure_psi"`
		IntakeAirTempC   float64 `json:"intake_air_temp_c"`
		BatteryVoltage   float64 `json:"battery_voltage"`
		VehicleSpeedKPH  float64 `json:"vehicle_speed_kph"`
		AmbientPressKPa  float64 `json:"ambient_pressure_kpa"`
	} `json:"sensors"`
}
