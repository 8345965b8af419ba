package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeStudentNotFound ErrorCode = "STUDENT_NOT_FOUND"
	ErrorCodeOfferNotFound   ErrorCode = "OFFER_NOT_FOUND"
	ErrorCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON     ErrorCode = "INVALID_JSON"

	// Server Error Codes (5xx)
	ErrorCodeInternalError        ErrorCode = "INTERNAL_ERROR"
	ErrorCodeCatalogUnavailable   ErrorCode = "CATALOG_UNAVAILABLE"
	ErrorCodeRecommendationFailed ErrorCode = "RECOMMENDATION_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	c.JSON(statusCode, &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	})
}

// SendStudentNotFoundError sends a standardized student not found error
func SendStudentNotFoundError(c *gin.Context, studentID string) {
	SendError(c, http.StatusNotFound, ErrorCodeStudentNotFound,
		"Student '"+studentID+"' not found")
}

// SendOfferNotFoundError sends a standardized offer not found error
func SendOfferNotFoundError(c *gin.Context, offerID string) {
	SendError(c, http.StatusNotFound, ErrorCodeOfferNotFound,
		"Offer '"+offerID+"' not found")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendCatalogUnavailableError sends a standardized catalog unavailability error
func SendCatalogUnavailableError(c *gin.Context, err error) {
	SendError(c, http.StatusServiceUnavailable, ErrorCodeCatalogUnavailable,
		"Catalog unavailable: "+err.Error())
}
