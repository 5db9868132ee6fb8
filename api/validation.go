// Package api provides validation utilities for API request handling.
package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-survey-similarity/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateCandidateName validates a candidate name parameter
func ValidateCandidateName(name string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(name) == "" {
		result.AddError("candidateName", "Candidate name is required")
	}

	return result
}

// ValidateSubmission validates a survey submission before it reaches the engine.
// Answer labels are not checked here: the encoder skips malformed ones.
func ValidateSubmission(record model.CandidateRecord) *ValidationResult {
	return ValidateCandidateName(record.Name)
}

// ValidatePagination parses the page and page_size query values.
// A missing page defaults to 1 and a missing page_size to defaultSize;
// page_size is capped at maxSize.
func ValidatePagination(pageParam, pageSizeParam string, defaultSize, maxSize int) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	page := parsePositive(result, "page", pageParam, 1)
	pageSize := parsePositive(result, "page_size", pageSizeParam, defaultSize)

	if maxSize > 0 && pageSize > maxSize {
		pageSize = maxSize
	}

	return page, pageSize, result
}

func parsePositive(result *ValidationResult, field, raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		result.AddError(field, fmt.Sprintf("%s must be an integer, got '%s'", field, raw))
		return fallback
	}
	if value < 1 {
		result.AddError(field, fmt.Sprintf("%s must be greater than 0", field))
		return fallback
	}

	return value
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
