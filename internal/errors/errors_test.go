package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_StatusCodes(t *testing.T) {
	testCases := []struct {
		name     string
		err      *AppError
		errType  ErrorType
		expected int
	}{
		{"Validation", NewValidationError("bad input", nil), ErrorTypeValidation, http.StatusBadRequest},
		{"Network", NewNetworkError("upstream down", nil), ErrorTypeNetwork, http.StatusBadGateway},
		{"Processing", NewProcessingError("cannot score", nil), ErrorTypeProcessing, http.StatusUnprocessableEntity},
		{"Timeout", NewTimeoutError("too slow", nil), ErrorTypeTimeout, http.StatusGatewayTimeout},
		{"NotFound", NewNotFoundError("missing", nil), ErrorTypeNotFound, http.StatusNotFound},
		{"Unavailable", NewUnavailableError("warming up", nil), ErrorTypeUnavailable, http.StatusServiceUnavailable},
		{"Internal", NewInternalError("boom", nil), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if !IsType(tc.err, tc.errType) {
				t.Errorf("Expected type %s", tc.errType)
			}
			if got := GetStatusCode(tc.err); got != tc.expected {
				t.Errorf("Expected status %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewProcessingError("scoring failed", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to reach the cause")
	}
	if err.Error() == "" {
		t.Error("Expected non-empty error string")
	}
}

func TestGetStatusCode_UnknownError(t *testing.T) {
	if got := GetStatusCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("Expected 500 for plain error, got %d", got)
	}
}

func TestIsType_UnknownError(t *testing.T) {
	if IsType(errors.New("plain"), ErrorTypeValidation) {
		t.Error("Plain errors must not match any type")
	}
}
