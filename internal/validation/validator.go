// Package validation provides request document validation for Tunedeck
// models. It combines go-playground struct tag validation with the
// domain rules the tags cannot express, and reports every failure with
// a field name so API clients can surface them inline.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"tunedeck.org/tunedeck/models"
)

// Validator validates incoming vehicle, ECU profile and tune documents.
type Validator struct {
	structValidator *validator.Validate
}

// ValidationError is a single field-level validation failure.
type ValidationError struct {
	// Field is the name of the field that failed validation
	Field string `json:"field"`

	// Message describes why the validation failed
	Message string `json:"message"`

	// Value is the invalid value that caused the error (optional)
	Value interface{} `json:"value,omitempty"`
}

// ValidationResult is the complete outcome of validating one document.
type ValidationResult struct {
	// Valid is true if validation passed
	Valid bool `json:"valid"`

	// Errors lists all failures found (empty if Valid is true)
	Errors []ValidationError `json:"errors,omitempty"`
}

// New creates a Validator ready to validate all Tunedeck document types.
func New() *Validator {
	return &Validator{
		structValidator: validator.New(),
	}
}

// ValidateVehicle validates a vehicle JSON document.
func (v *Validator) ValidateVehicle(data []byte) (*ValidationResult, error) {
	var vehicle models.Vehicle
	if err := json.Unmarshal(data, &vehicle); err != nil {
		return invalidJSON(err), nil
	}

	errs := v.structErrors(&vehicle)
	errs = append(errs, validateVehicleFields(&vehicle)...)

	return resultFor(errs), nil
}

// ValidateECUProfile validates an ECU profile JSON document.
func (v *Validator) ValidateECUProfile(data []byte) (*ValidationResult, error) {
	var profile models.ECUProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return invalidJSON(err), nil
	}

	errs := v.structErrors(&profile)

	return resultFor(errs), nil
}

// ValidateTune validates a tune JSON document.
func (v *Validator) ValidateTune(data []byte) (*ValidationResult, error) {
	var tune models.Tune
	if err := json.Unmarshal(data, &tune); err != nil {
		return invalidJSON(err), nil
	}

	errs := v.structErrors(&tune)
	errs = append(errs, validateTuneFields(&tune)...)

	return resultFor(errs), nil
}

// Validate validates an already-decoded document. Handlers that bind a
// request body and then fill path-derived fields use this instead of the
// raw-JSON entry points.
func (v *Validator) Validate(doc interface{}) *ValidationResult {
	errs := v.structErrors(doc)

	switch d := doc.(type) {
	case *models.Vehicle:
		errs = append(errs, validateVehicleFields(d)...)
	case *models.Tune:
		errs = append(errs, validateTuneFields(d)...)
	}

	return resultFor(errs)
}

// structErrors runs tag-based validation and flattens the result into
// field-level errors.
func (v *Validator) structErrors(doc interface{}) []ValidationError {
	err := v.structValidator.Struct(doc)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Field: "document", Message: err.Error()}}
	}

	var errs []ValidationError
	for _, fe := range verrs {
		errs = append(errs, ValidationError{
			Field:   jsonFieldName(fe.Namespace()),
			Message: tagMessage(fe),
			Value:   fe.Value(),
		})
	}

	return errs
}

// validateVehicleFields checks the vehicle rules struct tags cannot
// express.
func validateVehicleFields(vehicle *models.Vehicle) []ValidationError {
	var errs []ValidationError

	validDrive := map[string]bool{"FWD": true, "RWD": true, "AWD": true, "4WD": true}
	if vehicle.DriveType != "" && !validDrive[vehicle.DriveType] {
		errs = append(errs, ValidationError{
			Field:   "drive_type",
			Message: "Drive type must be one of: FWD, RWD, AWD, 4WD",
			Value:   vehicle.DriveType,
		})
	}

	validFuel := map[string]bool{"petrol": true, "diesel": true, "hybrid": true, "electric": true, "flex": true}
	if vehicle.FuelType != "" && !validFuel[strings.ToLower(vehicle.FuelType)] {
		errs = append(errs, ValidationError{
			Field:   "fuel_type",
			Message: "Fuel type must be one of: petrol, diesel, hybrid, electric, flex",
			Value:   vehicle.FuelType,
		})
	}

	if vehicle.Limits.MaxRPM < 0 {
		errs = append(errs, ValidationError{
			Field:   "limits.max_rpm",
			Message: "Maximum RPM cannot be negative",
			Value:   vehicle.Limits.MaxRPM,
		})
	}

	if vehicle.Limits.MaxTempC < 0 {
		errs = append(errs, ValidationError{
			Field:   "limits.max_temp_c",
			Message: "Maximum coolant temperature cannot be negative",
			Value:   vehicle.Limits.MaxTempC,
		})
	}

	if vehicle.Limits.MinFuelPressurePSI < 0 {
		errs = append(errs, ValidationError{
			Field:   "limits.min_fuel_pressure_psi",
			Message: "Minimum fuel pressure cannot be negative",
			Value:   vehicle.Limits.MinFuelPressurePSI,
		})
	}

	if vehicle.Limits.MaxBoostPSI < 0 {
		errs = append(errs, ValidationError{
			Field:   "limits.max_boost_psi",
			Message: "Maximum boost cannot be negative",
			Value:   vehicle.Limits.MaxBoostPSI,
		})
	}

	return errs
}

// validateTuneFields checks the tune rules struct tags cannot express.
func validateTuneFields(tune *models.Tune) []ValidationError {
	var errs []ValidationError

	if tune.Calibration.SizeBytes < 0 {
		errs = append(errs, ValidationError{
			Field:   "calibration.size_bytes",
			Message: "Calibration size cannot be negative",
			Value:   tune.Calibration.SizeBytes,
		})
	}

	if sum := tune.Calibration.SHA256; sum != "" {
		if len(sum) != 64 || !isHex(sum) {
			errs = append(errs, ValidationError{
				Field:   "calibration.sha256",
				Message: "Checksum must be 64 hex characters",
				Value:   sum,
			})
		}
	}

	return errs
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// jsonFieldName converts a validator namespace like "Vehicle.Make" into
// the snake_case JSON field name clients sent.
func jsonFieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	// Drop the struct name prefix.
	if len(parts) > 1 {
		parts = parts[1:]
	}

	for i, part := range parts {
		parts[i] = toSnake(part)
	}

	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field is required"
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("Failed %s validation", fe.Tag())
	}
}

func invalidJSON(err error) *ValidationResult {
	return &ValidationResult{
		Valid: false,
		Errors: []ValidationError{
			{Field: "document", Message: fmt.Sprintf("Invalid JSON: %v", err)},
		},
	}
}

func resultFor(errs []ValidationError) *ValidationResult {
	return &ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
