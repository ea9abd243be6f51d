package service

import (
	"errors"
	"fmt"
)

// Common service errors. Callers check them with errors.Is; errors from the
// ledger and the stores are wrapped and remain reachable the same way.
var (
	// ErrStudentExists is returned when registering a student ID that is already known.
	ErrStudentExists = errors.New("student already registered")

	// ErrUnknownStudent is returned when a student ID is not in the registry.
	ErrUnknownStudent = errors.New("unknown student")

	// ErrUnknownCourse is returned when a course ID is not in the catalog.
	ErrUnknownCourse = errors.New("unknown course")

	// ErrNotSelected is returned when dropping a course that is not in the
	// student's selected courses.
	ErrNotSelected = errors.New("course not selected by student")
)

// ServiceError is a custom error type for registrar errors.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registrar %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("registrar %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
