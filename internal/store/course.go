package store

import (
	"context"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
)

// CourseStore persists the static record of each course, one record per course.
type CourseStore interface {
	// Save writes the course record, replacing any previous record with the same ID.
	// Returns ErrInvalidEntity if the course fails validation.
	Save(ctx context.Context, course *domain.Course) error

	// List returns every stored course ordered by ID.
	// A store with no records returns an empty slice, not an error.
	// A record that cannot be decoded yields an error wrapping ErrCorrupt.
	List(ctx context.Context) ([]*domain.Course, error)
}
