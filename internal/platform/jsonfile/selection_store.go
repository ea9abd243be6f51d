package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/store"
)

const selectionPrefix = "selected_courses_"

// SelectionStore implements the store.SelectionStore interface.
type SelectionStore struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

// NewSelectionStore creates a SelectionStore rooted at <root>/Selected_Courses.
func NewSelectionStore(fsys afero.Fs, root string, logger *slog.Logger) *SelectionStore {
	if fsys == nil {
		panic("fs cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SelectionStore{
		fs:     fsys,
		dir:    filepath.Join(root, SelectedDir),
		logger: logger.With(slog.String("component", "selection_store")),
	}
}

var _ store.SelectionStore = (*SelectionStore)(nil)

// Save implements store.SelectionStore.Save
func (s *SelectionStore) Save(
	ctx context.Context,
	studentID string,
	selected map[string]domain.SelectedCourse,
) error {
	if len(selected) == 0 {
		return s.Delete(ctx, studentID)
	}

	path, err := s.path(studentID)
	if err != nil {
		return store.NewStoreError("selection", "save", "bad file name", err)
	}
	if err := writeJSON(s.fs, path, selected); err != nil {
		return store.NewStoreError("selection", "save", "failed to write export", err)
	}

	s.logger.DebugContext(ctx, "selected courses exported",
		slog.String("student_id", studentID),
		slog.Int("course_count", len(selected)))
	return nil
}

// Delete implements store.SelectionStore.Delete
func (s *SelectionStore) Delete(ctx context.Context, studentID string) error {
	path, err := s.path(studentID)
	if err != nil {
		return store.NewStoreError("selection", "delete", "bad file name", err)
	}
	if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return store.NewStoreError("selection", "delete", "failed to remove export", err)
	}
	return nil
}

func (s *SelectionStore) path(studentID string) (string, error) {
	name, err := recordName(selectionPrefix, studentID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return filepath.Join(s.dir, name), nil
}
