package store

import (
	"context"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
)

// StudentStore persists the static record of each student, one record per student.
// The derived selected-courses view is not part of this record.
type StudentStore interface {
	// Save writes the student record, replacing any previous record with the same ID.
	// Returns ErrInvalidEntity if the student fails validation.
	Save(ctx context.Context, student *domain.Student) error

	// List returns every stored student ordered by ID, each with an empty
	// selected-courses cache.
	List(ctx context.Context) ([]*domain.Student, error)
}

// SelectionStore exports a student's derived selected-courses view. The
// export is a regenerable cache, never read back as a source of truth.
type SelectionStore interface {
	// Save writes the view for the student. An empty view removes any
	// previous export instead of writing an empty one.
	Save(ctx context.Context, studentID string, selected map[string]domain.SelectedCourse) error

	// Delete removes the export for the student. Deleting a missing export is not an error.
	Delete(ctx context.Context, studentID string) error
}
