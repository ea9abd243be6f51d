package jsonfile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/store"
)

// courseRecord is the on-disk form of a course.
type courseRecord struct {
	CourseID   string          `json:"course_id"`
	CourseName string          `json:"course_name"`
	Department string          `json:"department"`
	Credits    int             `json:"credits"`
	Time       domain.Schedule `json:"time"`
	Location   string          `json:"location"`
}

// CourseStore implements the store.CourseStore interface with one JSON
// file per course.
type CourseStore struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

// NewCourseStore creates a CourseStore rooted at <root>/Courses.
// If logger is nil, a default logger will be used.
func NewCourseStore(fsys afero.Fs, root string, logger *slog.Logger) *CourseStore {
	if fsys == nil {
		panic("fs cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CourseStore{
		fs:     fsys,
		dir:    filepath.Join(root, CoursesDir),
		logger: logger.With(slog.String("component", "course_store")),
	}
}

// Ensure CourseStore implements store.CourseStore interface
var _ store.CourseStore = (*CourseStore)(nil)

// Save implements store.CourseStore.Save
func (s *CourseStore) Save(ctx context.Context, course *domain.Course) error {
	if err := course.Validate(); err != nil {
		return store.NewStoreError("course", "save", "validation failed",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	name, err := recordName("", course.ID)
	if err != nil {
		return store.NewStoreError("course", "save", "bad file name",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	rec := courseRecord{
		CourseID:   course.ID,
		CourseName: course.Name,
		Department: course.Department,
		Credits:    course.Credits,
		Time:       course.Schedule,
		Location:   course.Location,
	}
	path := filepath.Join(s.dir, name)
	if err := writeJSON(s.fs, path, rec); err != nil {
		return store.NewStoreError("course", "save", "failed to write record", err)
	}

	s.logger.DebugContext(ctx, "course record saved",
		slog.String("course_id", course.ID),
		slog.String("path", path))
	return nil
}

// List implements store.CourseStore.List
func (s *CourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	paths, err := recordFiles(s.fs, s.dir)
	if err != nil {
		return nil, store.NewStoreError("course", "list", "failed to read directory", err)
	}

	courses := make([]*domain.Course, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var rec courseRecord
		if err := readJSON(s.fs, path, &rec); err != nil {
			return nil, store.NewStoreError("course", "list", "failed to decode "+path,
				fmt.Errorf("%w: %v", store.ErrCorrupt, err))
		}

		course, err := domain.NewCourse(rec.CourseID, rec.CourseName, rec.Department,
			rec.Credits, rec.Time, rec.Location)
		if err != nil {
			return nil, store.NewStoreError("course", "list", "invalid record "+path,
				fmt.Errorf("%w: %v", store.ErrCorrupt, err))
		}
		courses = append(courses, course)
	}

	s.logger.DebugContext(ctx, "course records loaded", slog.Int("count", len(courses)))
	return courses, nil
}
