package api

import (
	"fmt"
	"net/http"
	"testing"

	"tunedeck.org/tunedeck/internal/store"
)

func TestAPIErrorMessage(t *testing.T) {
	err := NewAPIError(http.StatusBadRequest, "bad input", "field x is empty")
	if got := err.Error(); got != "bad input: field x is empty" {
		t.Errorf("Error() = %q", got)
	}

	err = NewAPIError(http.StatusBadRequest, "bad input", "")
	if got := err.Error(); got != "bad input" {
		t.Errorf("Error() without details = %q", got)
	}
}

func TestStoreErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "not found",
			err:      &store.NotFoundError{Resource: "vehicle", ID: "vehicle-x"},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "validation",
			err:      &store.ValidationError{Field: "make", Message: "is required"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "corrupt",
			err:      &store.CorruptError{Document: "vehicles.json", Err: fmt.Errorf("unexpected end of JSON input")},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "unknown",
			err:      fmt.Errorf("disk on fire"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := storeError(tt.err)
			if apiErr.Code != tt.wantCode {
				t.Errorf("storeError(%v).Code = %d, want %d", tt.err, apiErr.Code, tt.wantCode)
			}
		})
	}
}

func TestStoreErrorNotFoundCarriesID(t *testing.T) {
	apiErr := storeError(&store.NotFoundError{Resource: "tune", ID: "tune-42"})

	if apiErr.Context["id"] != "tune-42" {
		t.Errorf("Context[id] = %v, want tune-42", apiErr.Context["id"])
	}
	if apiErr.Message != "tune not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestNotFoundErrorConstructor(t *testing.T) {
	err := NotFoundError("vehicle", "vehicle-x")
	if err.Code != http.StatusNotFound {
		t.Errorf("Code = %d", err.Code)
	}
}

func TestValidationFailedErrorFields(t *testing.T) {
	err := ValidationFailedError("vehicle validation failed", map[string]string{"make": "is required"})
	if err.Code != http.StatusBadRequest {
		t.Errorf("Code = %d", err.Code)
	}
	if err.FieldError["make"] != "is required" {
		t.Errorf("FieldError = %v", err.FieldError)
	}
}
