package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestStudentNotFoundError(t *testing.T) {
	err := NewStudentNotFoundError("student-42")

	expectedMsg := "student with ID 'student-42' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrStudentNotFound) {
		t.Error("Expected error to match ErrStudentNotFound sentinel")
	}

	if errors.Is(err, ErrOfferNotFound) {
		t.Error("Error should not match ErrOfferNotFound")
	}
}

func TestOfferNotFoundError(t *testing.T) {
	err := NewOfferNotFoundError("offer-7")

	expectedMsg := "offer with ID 'offer-7' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrOfferNotFound) {
		t.Error("Expected error to match ErrOfferNotFound sentinel")
	}
}

func TestCatalogUnavailableError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewCatalogUnavailableError("postgres", cause)

	expectedMsg := "catalog backend 'postgres' unavailable: connection refused"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Error("Expected error to match ErrCatalogUnavailable sentinel")
	}

	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}

	// Without a cause the message omits the cause suffix
	bare := NewCatalogUnavailableError("memory", nil)
	if bare.Error() != "catalog backend 'memory' unavailable" {
		t.Errorf("Unexpected message: %s", bare.Error())
	}
}

func TestInferenceError(t *testing.T) {
	err := NewInferenceError(503, "service overloaded", nil)

	expectedMsg := "inference request failed with status 503: service overloaded"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrInferenceFailed) {
		t.Error("Expected error to match ErrInferenceFailed sentinel")
	}

	// Transport-level failure carries no status code
	cause := fmt.Errorf("dial tcp: timeout")
	transport := NewInferenceError(0, "request aborted", cause)
	if transport.Error() != "inference request failed: request aborted" {
		t.Errorf("Unexpected message: %s", transport.Error())
	}
	if !errors.Is(transport, cause) {
		t.Error("Expected error to unwrap to its cause")
	}
}
