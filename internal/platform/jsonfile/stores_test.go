package jsonfile

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/ledger"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/store"
)

const root = "/data"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleCourse() *domain.Course {
	return &domain.Course{
		ID:         "CS101",
		Name:       "Intro to CS",
		Department: "CS",
		Credits:    3,
		Schedule: domain.Schedule{
			"Lesson-1": {Weekday: "Monday", StartTime: "08:30", EndTime: "09:30"},
			"Lesson-2": {Weekday: "Monday", StartTime: "09:30", EndTime: "10:30"},
		},
		Location: "Room 1",
	}
}

func sampleStudent() *domain.Student {
	return &domain.Student{
		ID:         "S1",
		LastName:   "Lovelace",
		FirstName:  "Ada",
		Gender:     "F",
		Birthday:   time.Date(2001, time.March, 4, 0, 0, 0, 0, time.UTC),
		Department: "Math",
	}
}

func TestCourseStoreSaveAndList(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewCourseStore(fsys, root, discardLogger())
	ctx := context.Background()

	empty, err := s.List(ctx)
	require.NoError(t, err, "missing directory lists nothing")
	assert.Empty(t, empty)

	require.NoError(t, s.Save(ctx, sampleCourse()))

	second := sampleCourse()
	second.ID = "CS100"
	second.Schedule = nil
	require.NoError(t, s.Save(ctx, second))

	raw, err := afero.ReadFile(fsys, filepath.Join(root, CoursesDir, "CS101.json"))
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"course_id", "course_name", "department", "credits", "time", "location"} {
		assert.Contains(t, fields, key)
	}

	courses, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "CS100", courses[0].ID)
	assert.Equal(t, sampleCourse(), courses[1])
}

func TestCourseStoreRejectsInvalidCourse(t *testing.T) {
	s := NewCourseStore(afero.NewMemMapFs(), root, discardLogger())

	bad := sampleCourse()
	bad.Credits = 0
	err := s.Save(context.Background(), bad)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	escape := sampleCourse()
	escape.ID = "../CS101"
	err = s.Save(context.Background(), escape)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestCourseStoreReportsCorruptRecord(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(root, CoursesDir, "BAD.json"), []byte(`{"course_id":`), 0o644))

	_, err := NewCourseStore(fsys, root, discardLogger()).List(context.Background())
	require.ErrorIs(t, err, store.ErrCorrupt)

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "course", storeErr.Entity)
}

func TestListSkipsNonRecordFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewCourseStore(fsys, root, discardLogger())
	require.NoError(t, s.Save(context.Background(), sampleCourse()))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(root, CoursesDir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(root, CoursesDir, ".CS101.json.tmp-1"), []byte("{"), 0o644))

	courses, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestStudentStoreSaveAndList(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewStudentStore(fsys, root, discardLogger())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleStudent()))

	raw, err := afero.ReadFile(fsys, filepath.Join(root, StudentsDir, "S1.json"))
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "2001-03-04", fields["birthday"])

	students, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)

	got := students[0]
	assert.Equal(t, "S1", got.ID)
	assert.Equal(t, "Ada Lovelace", got.FullName())
	assert.True(t, got.Birthday.Equal(sampleStudent().Birthday))
	assert.NotNil(t, got.SelectedCourses)
	assert.Empty(t, got.SelectedCourses)
}

func TestStudentStoreReportsBadBirthday(t *testing.T) {
	fsys := afero.NewMemMapFs()
	record := `{"student_id":"S1","last_name":"L","first_name":"F","gender":"F","birthday":"04/03/2001","department":"M"}`
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(root, StudentsDir, "S1.json"), []byte(record), 0o644))

	_, err := NewStudentStore(fsys, root, discardLogger()).List(context.Background())
	assert.ErrorIs(t, err, store.ErrCorrupt)
}

func TestSelectionStore(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewSelectionStore(fsys, root, discardLogger())
	ctx := context.Background()
	path := filepath.Join(root, SelectedDir, "selected_courses_S1.json")

	selected := map[string]domain.SelectedCourse{
		"CS101": {Information: sampleCourse().Info(), Grade: 90},
	}
	require.NoError(t, s.Save(ctx, "S1", selected))

	raw, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	var decoded map[string]domain.SelectedCourse
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, selected, decoded)

	// An empty view removes the stale export.
	require.NoError(t, s.Save(ctx, "S1", nil))
	exists, err := afero.Exists(fsys, path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Delete(ctx, "S1"), "deleting a missing export is fine")
}

func TestLedgerStore(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewLedgerStore(fsys, root, discardLogger())
	ctx := context.Background()

	l := ledger.New(ledger.WithLogger(discardLogger()))
	require.NoError(t, s.Load(ctx, l), "missing document starts empty")
	assert.Zero(t, l.Len())

	l.RegisterCourse(sampleCourse())
	require.NoError(t, l.Enroll("CS101", sampleStudent().Summary()))
	require.NoError(t, l.SetGrade("CS101", "S1", 77))
	require.NoError(t, s.Save(ctx, l))

	restored := ledger.New(ledger.WithLogger(discardLogger()))
	require.NoError(t, s.Load(ctx, restored))
	assert.Equal(t, l.Document(), restored.Document())

	infos, err := afero.ReadDir(fsys, root)
	require.NoError(t, err)
	require.Len(t, infos, 1, "temporary files are renamed away")
	assert.Equal(t, LedgerFile, infos[0].Name())
}

func TestLedgerStoreSurfacesCorruption(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(root, LedgerFile), []byte(`{"CS101": {"Information": 7}}`), 0o644))

	l := ledger.New(ledger.WithLogger(discardLogger()))
	l.RegisterCourse(sampleCourse())

	err := NewLedgerStore(fsys, root, discardLogger()).Load(context.Background(), l)
	require.ErrorIs(t, err, store.ErrCorrupt)
	assert.ErrorIs(t, err, ledger.ErrInvalidDocument)
	assert.Equal(t, []string{"CS101"}, l.CourseIDs())
}
