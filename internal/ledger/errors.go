package ledger

import "errors"

var (
	// ErrCourseNotFound is returned when the course is not registered in the ledger.
	ErrCourseNotFound = errors.New("course is not in the ledger")

	// ErrNotEnrolled is returned when the student has no registration in the course.
	ErrNotEnrolled = errors.New("student is not enrolled in the course")

	// ErrInvalidDocument is returned when a persisted ledger document is malformed.
	// The wrapped error carries the decoding or validation detail.
	ErrInvalidDocument = errors.New("invalid ledger document")
)
