package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCandidateNotFoundError(t *testing.T) {
	err := NewCandidateNotFoundError("Alice")

	// Test error message
	expectedMsg := "candidate named 'Alice' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrCandidateNotFound) {
		t.Error("Expected error to match ErrCandidateNotFound sentinel")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("Expected error to match ErrNotFound sentinel")
	}

	// Test that it doesn't match other sentinels
	if errors.Is(err, ErrPageNotFound) {
		t.Error("Error should not match ErrPageNotFound")
	}
}

func TestPageNotFoundError(t *testing.T) {
	err := NewPageNotFoundError(3, 5, 7)

	expectedMsg := "page 3 (page size 5) starts at index 10, beyond population of 7"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrPageNotFound) {
		t.Error("Expected error to match ErrPageNotFound sentinel")
	}

	huge := NewPageNotFoundError(1844674407370955163, 5, 7)
	expectedMsg = "page 1844674407370955163 (page size 5) is beyond population of 7"
	if huge.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, huge.Error())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("Expected error to match ErrNotFound sentinel")
	}
	if errors.Is(err, ErrCandidateNotFound) {
		t.Error("Error should not match ErrCandidateNotFound")
	}
}

func TestCandidateExistsError(t *testing.T) {
	err := NewCandidateExistsError("Bob")

	expectedMsg := "candidate named 'Bob' already exists"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrCandidateExists) {
		t.Error("Expected error to match ErrCandidateExists sentinel")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("Error should not match ErrNotFound")
	}
}

func TestValidationError(t *testing.T) {
	// Test with field
	field := "candidateName"
	message := "cannot be empty"
	err := NewValidationError(field, message)

	expectedMsg := "validation error for field 'candidateName': cannot be empty"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test without field
	err2 := NewValidationError("", message)

	expectedMsg2 := "validation error: cannot be empty"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
	if !errors.Is(err2, ErrInvalidInput) {
		t.Error("Expected error without field to match ErrInvalidInput sentinel")
	}
}

func TestErrorChaining(t *testing.T) {
	// Test that our custom errors can be wrapped and unwrapped
	originalErr := NewCandidateNotFoundError("Carol")
	wrappedErr := fmt.Errorf("ranking candidates: %w", originalErr)

	// Should still be able to detect the original error
	if !errors.Is(wrappedErr, ErrCandidateNotFound) {
		t.Error("Expected wrapped error to still match ErrCandidateNotFound sentinel")
	}

	// Should be able to unwrap to get the original error
	var candidateErr *CandidateNotFoundError
	if !errors.As(wrappedErr, &candidateErr) {
		t.Fatal("Expected to be able to unwrap to CandidateNotFoundError")
	}

	if candidateErr.Name != "Carol" {
		t.Errorf("Expected candidate name 'Carol', got '%s'", candidateErr.Name)
	}
}
