// Package shared contains common domain types, errors and events
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "journal", "roster", "notification"
	Op      string // Operation that failed, e.g., "Commit", "AddNote"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Journal domain errors
var (
	ErrLessonNotFound   = NewDomainError("journal", "FindLesson", ErrNotFound, "lesson not found")
	ErrGradeNotFound    = NewDomainError("journal", "Lookup", ErrNotFound, "grade not found")
	ErrDuplicateGrade   = NewDomainError("journal", "Put", ErrAlreadyExists, "grade already exists for this student and lesson")
	ErrInvalidCategory  = NewDomainError("journal", "Validate", ErrInvalidInput, "invalid lesson category")
	ErrInvalidDate      = NewDomainError("journal", "Validate", ErrInvalidFormat, "lesson date must be DD.MM.YYYY")
	ErrEditorNotOpen    = NewDomainError("journal", "Commit", ErrInvalidState, "no grade edit in progress")
	ErrEditorAlreadyOpen = NewDomainError("journal", "Open", ErrInvalidState, "grade edit already in progress")
	ErrInvalidPageSize  = NewDomainError("journal", "SetPageSize", ErrValueOutOfRange, "lessons per page must be positive")
)

// Roster domain errors
var (
	ErrStudentNotFound = NewDomainError("roster", "Find", ErrNotFound, "student not found")
	ErrNoteNotFound    = NewDomainError("roster", "DeleteNote", ErrNotFound, "note not found")
	ErrEmptyNoteText   = NewDomainError("roster", "AddNote", ErrEmptyValue, "note text cannot be empty")
)

// Notification domain errors
var (
	ErrInvalidSeverity = NewDomainError("notification", "Validate", ErrInvalidInput, "invalid notification severity")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsInvalidState checks if the error is a state machine violation.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState) || errors.Is(err, ErrStateTransition)
}
