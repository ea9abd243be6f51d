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

// studentRecord is the on-disk form of a student.
type studentRecord struct {
	StudentID  string `json:"student_id"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	Gender     string `json:"gender"`
	Birthday   string `json:"birthday"`
	Department string `json:"department"`
}

// StudentStore implements the store.StudentStore interface with one JSON
// file per student.
type StudentStore struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

// NewStudentStore creates a StudentStore rooted at <root>/Students.
func NewStudentStore(fsys afero.Fs, root string, logger *slog.Logger) *StudentStore {
	if fsys == nil {
		panic("fs cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &StudentStore{
		fs:     fsys,
		dir:    filepath.Join(root, StudentsDir),
		logger: logger.With(slog.String("component", "student_store")),
	}
}

var _ store.StudentStore = (*StudentStore)(nil)

// Save implements store.StudentStore.Save
func (s *StudentStore) Save(ctx context.Context, student *domain.Student) error {
	if err := student.Validate(); err != nil {
		return store.NewStoreError("student", "save", "validation failed",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	name, err := recordName("", student.ID)
	if err != nil {
		return store.NewStoreError("student", "save", "bad file name",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	rec := studentRecord{
		StudentID:  student.ID,
		LastName:   student.LastName,
		FirstName:  student.FirstName,
		Gender:     student.Gender,
		Birthday:   student.Birthday.Format(domain.BirthdayLayout),
		Department: student.Department,
	}
	path := filepath.Join(s.dir, name)
	if err := writeJSON(s.fs, path, rec); err != nil {
		return store.NewStoreError("student", "save", "failed to write record", err)
	}

	s.logger.DebugContext(ctx, "student record saved",
		slog.String("student_id", student.ID),
		slog.String("path", path))
	return nil
}

// List implements store.StudentStore.List
func (s *StudentStore) List(ctx context.Context) ([]*domain.Student, error) {
	paths, err := recordFiles(s.fs, s.dir)
	if err != nil {
		return nil, store.NewStoreError("student", "list", "failed to read directory", err)
	}

	students := make([]*domain.Student, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var rec studentRecord
		if err := readJSON(s.fs, path, &rec); err != nil {
			return nil, store.NewStoreError("student", "list", "failed to decode "+path,
				fmt.Errorf("%w: %v", store.ErrCorrupt, err))
		}

		birthday, err := domain.ParseBirthday(rec.Birthday)
		if err != nil {
			return nil, store.NewStoreError("student", "list", "invalid record "+path,
				fmt.Errorf("%w: %v", store.ErrCorrupt, err))
		}

		student, err := domain.NewStudent(rec.StudentID, rec.LastName, rec.FirstName,
			rec.Gender, birthday, rec.Department)
		if err != nil {
			return nil, store.NewStoreError("student", "list", "invalid record "+path,
				fmt.Errorf("%w: %v", store.ErrCorrupt, err))
		}
		students = append(students, student)
	}

	s.logger.DebugContext(ctx, "student records loaded", slog.Int("count", len(students)))
	return students, nil
}
