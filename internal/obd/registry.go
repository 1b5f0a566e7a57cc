// Package obd holds the static OBD-II reference data used across the
// workstation: parameter ID (PID) descriptors, diagnostic trouble code (DTC)
// descriptions, and the emissions thresholds consumed by the diagnostic
// engine. The tables are read-only; the only failure mode is "not found".
package obd

import "sort"

// PIDDefinition describes one OBD-II live-data channel.
type PIDDefinition struct {
	// Name is the channel description
	Name string `json:"name"`

	// Unit is the engineering unit of the decoded value
	Unit string `json:"unit"`

	// Min and Max bound the decodable range
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Emissions evaluation window. Lambda inside [LambdaRichLimit,
// LambdaLeanLimit] is considered in closed-loop range; outside it the
// emissions sub-check reports CHECK.
const (
	LambdaRichLimit = 0.85
	LambdaLeanLimit = 1.15
)

// pids maps mode-01 PID hex strings to their descriptors.
var pids = map[string]PIDDefinition{
	"04": {Name: "Calculated engine load", Unit: "%", Min: 0, Max: 100},
	"05": {Name: "Engine coolant temperature", Unit: "°C", Min: -40, Max: 215},
	"0A": {Name: "Fuel pressure", Unit: "kPa", Min: 0, Max: 765},
	"0B": {Name: "Intake manifold absolute pressure", Unit: "kPa", Min: 0, Max: 255},
	"0C": {Name: "Engine RPM", Unit: "rpm", Min: 0, Max: 16383.75},
	"0D": {Name: "Vehicle speed", Unit: "km/h", Min: 0, Max: 255},
	"0F": {Name: "Intake air temperature", Unit: "°C", Min: -40, Max: 215},
	"10": {Name: "MAF air flow rate", Unit: "g/s", Min: 0, Max: 655.35},
	"11": {Name: "Throttle position", Unit: "%", Min: 0, Max: 100},
	"1F": {Name: "Run time since engine start", Unit: "s", Min: 0, Max: 65535},
	"22": {Name: "Fuel rail pressure (relative)", Unit: "kPa", Min: 0, Max: 5177.265},
	"2F": {Name: "Fuel tank level input", Unit: "%", Min: 0, Max: 100},
	"33": {Name: "Absolute barometric pressure", Unit: "kPa", Min: 0, Max: 255},
	"42": {Name: "Control module voltage", Unit: "V", Min: 0, Max: 65.535},
	"44": {Name: "Commanded equivalence ratio (lambda)", Unit: "ratio", Min: 0, Max: 2},
	"46": {Name: "Ambient air temperature", Unit: "°C", Min: -40, Max: 215},
	"5C": {Name: "Engine oil temperature", Unit: "°C", Min: -40, Max: 210},
}

// dtcs maps trouble codes to their descriptions.
var dtcs = map[string]string{
	"P0087": "Fuel rail/system pressure too low",
	"P0101": "Mass air flow circuit range/performance",
	"P0113": "Intake air temperature sensor circuit high",
	"P0128": "Coolant thermostat below regulating temperature",
	"P0171": "System too lean (bank 1)",
	"P0172": "System too rich (bank 1)",
	"P0217": "Engine coolant over-temperature condition",
	"P0300": "Random/multiple cylinder misfire detected",
	"P0301": "Cylinder 1 misfire detected",
	"P0420": "Catalyst system efficiency below threshold (bank 1)",
	"P0442": "Evaporative emission system leak detected (small leak)",
	"P0455": "Evaporative emission system leak detected (gross leak)",
	"P0506": "Idle air control system RPM lower than expected",
	"P0562": "System voltage low",
	"P0234": "Engine overboost condition",
	"U0100": "Lost communication with ECM/PCM",
	"U0121": "Lost communication with ABS control module",
	"C0035": "Left front wheel speed sensor circuit",
}

// GetPID returns the definition for a mode-01 PID hex string.
func GetPID(code string) (PIDDefinition, bool) {
	def, ok := pids[code]
	return def, ok
}

// ListPIDs returns a copy of the full PID table.
func ListPIDs() map[string]PIDDefinition {
	out := make(map[string]PIDDefinition, len(pids))
	for k, v := range pids {
		out[k] = v
	}
	return out
}

// PIDCodes returns the known PID codes in sorted order.
func PIDCodes() []string {
	codes := make([]string, 0, len(pids))
	for k := range pids {
		codes = append(codes, k)
	}
	sort.Strings(codes)
	return codes
}

// GetDTC returns the description for a trouble code.
func GetDTC(code string) (string, bool) {
	desc, ok := dtcs[code]
	return desc, ok
}

// DescribeDTC returns the description for a trouble code, or a generic
// fallback when the code is unknown.
func DescribeDTC(code string) string {
	if desc, ok := dtcs[code]; ok {
		return desc
	}
	return "Unknown diagnostic trouble code"
}

// ListDTCs returns a copy of the full DTC table.
func ListDTCs() map[string]string {
	out := make(map[string]string, len(dtcs))
	for k, v := range dtcs {
		out[k] = v
	}
	return out
}
