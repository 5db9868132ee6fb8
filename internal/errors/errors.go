package errors

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for common error conditions
var (
	// ErrNotFound is matched by every "not found" error below
	ErrNotFound = errors.New("not found")

	// ErrCandidateNotFound is returned when no record has the requested candidate name
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrPageNotFound is returned when a pagination window starts past the population
	ErrPageNotFound = errors.New("page not found")

	// ErrCandidateExists is returned when a submission reuses an existing candidate name
	ErrCandidateExists = errors.New("candidate already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// CandidateNotFoundError represents a candidate lookup miss with context
type CandidateNotFoundError struct {
	Name string
}

func (e *CandidateNotFoundError) Error() string {
	return fmt.Sprintf("candidate named '%s' not found", e.Name)
}

func (e *CandidateNotFoundError) Is(target error) bool {
	return target == ErrCandidateNotFound || target == ErrNotFound
}

// NewCandidateNotFoundError creates a new CandidateNotFoundError
func NewCandidateNotFoundError(name string) *CandidateNotFoundError {
	return &CandidateNotFoundError{Name: name}
}

// PageNotFoundError represents a page whose first anchor index is outside the population
type PageNotFoundError struct {
	Page       int
	PageSize   int
	Population int
}

func (e *PageNotFoundError) Error() string {
	if e.PageSize > 0 && e.Page-1 > math.MaxInt/e.PageSize {
		return fmt.Sprintf("page %d (page size %d) is beyond population of %d", e.Page, e.PageSize, e.Population)
	}
	return fmt.Sprintf("page %d (page size %d) starts at index %d, beyond population of %d",
		e.Page, e.PageSize, (e.Page-1)*e.PageSize, e.Population)
}

func (e *PageNotFoundError) Is(target error) bool {
	return target == ErrPageNotFound || target == ErrNotFound
}

// NewPageNotFoundError creates a new PageNotFoundError
func NewPageNotFoundError(page, pageSize, population int) *PageNotFoundError {
	return &PageNotFoundError{Page: page, PageSize: pageSize, Population: population}
}

// CandidateExistsError is returned when a candidate name is already taken
type CandidateExistsError struct {
	Name string
}

func (e *CandidateExistsError) Error() string {
	return fmt.Sprintf("candidate named '%s' already exists", e.Name)
}

func (e *CandidateExistsError) Is(target error) bool {
	return target == ErrCandidateExists
}

// NewCandidateExistsError creates a new CandidateExistsError
func NewCandidateExistsError(name string) *CandidateExistsError {
	return &CandidateExistsError{Name: name}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
