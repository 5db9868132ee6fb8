package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/gcbaptista/go-survey-similarity/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrorCodeCandidateNotFound ErrorCode = "CANDIDATE_NOT_FOUND"
	ErrorCodePageNotFound      ErrorCode = "PAGE_NOT_FOUND"
	ErrorCodeRouteNotFound     ErrorCode = "ROUTE_NOT_FOUND"
	ErrorCodeCandidateExists   ErrorCode = "CANDIDATE_ALREADY_EXISTS"
	ErrorCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON       ErrorCode = "INVALID_JSON"

	// Server Error Codes (5xx)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
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
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendCandidateNotFoundError sends a standardized candidate not found error
func SendCandidateNotFoundError(c *gin.Context, name string) {
	SendError(c, http.StatusNotFound, ErrorCodeCandidateNotFound,
		"Candidate '"+name+"' not found")
}

// SendCandidateExistsError sends a standardized duplicate candidate error
func SendCandidateExistsError(c *gin.Context, name string) {
	SendError(c, http.StatusConflict, ErrorCodeCandidateExists,
		"Candidate '"+name+"' already exists")
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

// SendDomainError maps an error returned by the candidate manager onto a response.
func SendDomainError(c *gin.Context, operation string, err error) {
	var (
		notFound   *apperrors.CandidateNotFoundError
		exists     *apperrors.CandidateExistsError
		validation *apperrors.ValidationError
	)

	switch {
	case errors.As(err, &notFound):
		SendCandidateNotFoundError(c, notFound.Name)
	case errors.Is(err, apperrors.ErrPageNotFound):
		SendError(c, http.StatusNotFound, ErrorCodePageNotFound, err.Error())
	case errors.As(err, &exists):
		SendCandidateExistsError(c, exists.Name)
	case errors.As(err, &validation):
		result := &ValidationResult{Valid: true}
		result.AddError(validation.Field, validation.Message)
		SendStructuredValidationError(c, result)
	case errors.Is(err, apperrors.ErrNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeCandidateNotFound, err.Error())
	default:
		SendInternalError(c, operation, err)
	}
}
