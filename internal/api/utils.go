package api

import (
	"tunedeck.org/tunedeck/internal/validation"
)

// fieldErrorMap flattens a validation result into field -> message pairs
// for the API error payload.
func fieldErrorMap(result *validation.ValidationResult) map[string]string {
	fields := make(map[string]string, len(result.Errors))
	for _, e := range result.Errors {
		if _, exists := fields[e.Field]; !exists {
			fields[e.Field] = e.Message
		}
	}
	return fields
}
