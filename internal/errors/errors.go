package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrStudentNotFound is returned when a student record is not found
	ErrStudentNotFound = errors.New("student not found")

	// ErrOfferNotFound is returned when an offer is not found
	ErrOfferNotFound = errors.New("offer not found")

	// ErrCatalogUnavailable is returned when the catalog source cannot be reached
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrInferenceFailed is returned when the inference service call fails
	ErrInferenceFailed = errors.New("inference failed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// StudentNotFoundError represents a student not found error with context
type StudentNotFoundError struct {
	StudentID string
}

func (e *StudentNotFoundError) Error() string {
	return fmt.Sprintf("student with ID '%s' not found", e.StudentID)
}

func (e *StudentNotFoundError) Is(target error) bool {
	return target == ErrStudentNotFound
}

// NewStudentNotFoundError creates a new StudentNotFoundError
func NewStudentNotFoundError(studentID string) *StudentNotFoundError {
	return &StudentNotFoundError{StudentID: studentID}
}

// OfferNotFoundError represents an offer not found error with context
type OfferNotFoundError struct {
	OfferID string
}

func (e *OfferNotFoundError) Error() string {
	return fmt.Sprintf("offer with ID '%s' not found", e.OfferID)
}

func (e *OfferNotFoundError) Is(target error) bool {
	return target == ErrOfferNotFound
}

// NewOfferNotFoundError creates a new OfferNotFoundError
func NewOfferNotFoundError(offerID string) *OfferNotFoundError {
	return &OfferNotFoundError{OfferID: offerID}
}

// CatalogUnavailableError represents a catalog fetch failure with context
type CatalogUnavailableError struct {
	Backend string
	Cause   error
}

func (e *CatalogUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog backend '%s' unavailable: %v", e.Backend, e.Cause)
	}
	return fmt.Sprintf("catalog backend '%s' unavailable", e.Backend)
}

func (e *CatalogUnavailableError) Is(target error) bool {
	return target == ErrCatalogUnavailable
}

func (e *CatalogUnavailableError) Unwrap() error {
	return e.Cause
}

// NewCatalogUnavailableError creates a new CatalogUnavailableError
func NewCatalogUnavailableError(backend string, cause error) *CatalogUnavailableError {
	return &CatalogUnavailableError{Backend: backend, Cause: cause}
}

// InferenceError represents a failed call to the inference service
type InferenceError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *InferenceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("inference request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("inference request failed: %s", e.Message)
}

func (e *InferenceError) Is(target error) bool {
	return target == ErrInferenceFailed
}

func (e *InferenceError) Unwrap() error {
	return e.Cause
}

// NewInferenceError creates a new InferenceError
func NewInferenceError(statusCode int, message string, cause error) *InferenceError {
	return &InferenceError{StatusCode: statusCode, Message: message, Cause: cause}
}
