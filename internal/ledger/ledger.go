package ledger

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain/grading"
)

type entry struct {
	info   domain.CourseInfo
	roster map[string]domain.RegistrationRecord
}

// Ledger owns the course -> roster -> grade mapping.
type Ledger struct {
	courses map[string]*entry
	// byStudent is the reverse index student_id -> set of course_ids,
	// kept in step with every roster change.
	byStudent map[string]map[string]struct{}
	logger    *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used to report non-fatal failures.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New returns an empty Ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		courses:   make(map[string]*entry),
		byStudent: make(map[string]map[string]struct{}),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With(slog.String("component", "ledger"))
	return l
}

// RegisterCourse inserts an entry for the course with an empty roster,
// replacing any previous entry with the same ID (and its roster).
func (l *Ledger) RegisterCourse(course *domain.Course) {
	if old, ok := l.courses[course.ID]; ok {
		l.unindexRoster(course.ID, old.roster)
		l.logger.Warn("course re-registered, previous roster discarded",
			slog.String("course_id", course.ID),
			slog.Int("dropped_registrations", len(old.roster)))
	}

	l.courses[course.ID] = &entry{
		info:   course.Info(),
		roster: make(map[string]domain.RegistrationRecord),
	}
	l.logger.Debug("course registered", slog.String("course_id", course.ID))
}

// DeregisterCourse removes the course and its whole roster.
func (l *Ledger) DeregisterCourse(courseID string) error {
	e, ok := l.courses[courseID]
	if !ok {
		l.logger.Warn("cannot remove course", slog.String("course_id", courseID))
		return fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}

	l.unindexRoster(courseID, e.roster)
	delete(l.courses, courseID)
	l.logger.Debug("course removed",
		slog.String("course_id", courseID),
		slog.Int("dropped_registrations", len(e.roster)))
	return nil
}

// Enroll registers the student in the course with an ungraded record.
// Enrolling an already-enrolled student resets the grade to ungraded.
func (l *Ledger) Enroll(courseID string, student domain.StudentSummary) error {
	e, ok := l.courses[courseID]
	if !ok {
		l.logger.Warn("cannot enroll student",
			slog.String("course_id", courseID),
			slog.String("student_id", student.StudentID))
		return fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}

	if prev, enrolled := e.roster[student.StudentID]; enrolled && domain.IsGraded(prev.Grade) {
		l.logger.Warn("re-enrollment resets grade",
			slog.String("course_id", courseID),
			slog.String("student_id", student.StudentID),
			slog.Float64("previous_grade", prev.Grade))
	}

	e.roster[student.StudentID] = domain.NewRegistrationRecord(student)
	l.index(student.StudentID, courseID)
	return nil
}

// Withdraw removes the student's registration from the course.
func (l *Ledger) Withdraw(courseID, studentID string) error {
	e, err := l.registration(courseID, studentID, "withdraw")
	if err != nil {
		return err
	}

	delete(e.roster, studentID)
	l.unindex(studentID, courseID)
	return nil
}

// SetGrade records a grade. The range is not checked here: callers must pass
// domain.Ungraded or a grade accepted by domain.ValidateGrade, since Save
// refuses and Load rejects anything else.
func (l *Ledger) SetGrade(courseID, studentID string, grade float64) error {
	e, err := l.registration(courseID, studentID, "set grade")
	if err != nil {
		return err
	}

	rec := e.roster[studentID]
	rec.Grade = grade
	e.roster[studentID] = rec
	return nil
}

func (l *Ledger) registration(courseID, studentID, op string) (*entry, error) {
	e, ok := l.courses[courseID]
	if !ok {
		l.logger.Warn("cannot "+op,
			slog.String("course_id", courseID),
			slog.String("student_id", studentID),
			slog.String("reason", "course not found"))
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}
	if _, ok := e.roster[studentID]; !ok {
		l.logger.Warn("cannot "+op,
			slog.String("course_id", courseID),
			slog.String("student_id", studentID),
			slog.String("reason", "student not enrolled"))
		return nil, fmt.Errorf("%w: student %s, course %s", ErrNotEnrolled, studentID, courseID)
	}
	return e, nil
}

// RosterSnapshot returns, for every course the student is enrolled in, the
// course snapshot and the student's grade. The result is detached from the
// ledger.
func (l *Ledger) RosterSnapshot(studentID string) map[string]domain.SelectedCourse {
	out := make(map[string]domain.SelectedCourse, len(l.byStudent[studentID]))
	for courseID := range l.byStudent[studentID] {
		e := l.courses[courseID]
		out[courseID] = domain.SelectedCourse{
			Information: e.info.Clone(),
			Grade:       e.roster[studentID].Grade,
		}
	}
	return out
}

// SyncSelectedCourses clears the student's derived view and refills it from
// the ledger.
func (l *Ledger) SyncSelectedCourses(student *domain.Student) {
	if student.SelectedCourses == nil {
		student.SelectedCourses = make(map[string]domain.SelectedCourse)
	}
	clear(student.SelectedCourses)
	for courseID, sc := range l.RosterSnapshot(student.ID) {
		student.SelectedCourses[courseID] = sc
	}
}

// StudentCrossCourseReport lists the student's grade in every enrolled course
// with the average over graded courses. A student with no enrollment gets an
// empty report.
func (l *Ledger) StudentCrossCourseReport(studentID string) grading.Report {
	entries := make([]grading.ReportEntry, 0, len(l.byStudent[studentID]))
	for courseID := range l.byStudent[studentID] {
		e := l.courses[courseID]
		entries = append(entries, grading.ReportEntry{
			CourseID:   courseID,
			CourseName: e.info.Name,
			Grade:      e.roster[studentID].Grade,
		})
	}
	return grading.BuildReport(entries)
}

// CourseAverage averages the graded students of one course. The boolean is
// false when nobody in the course has been graded.
func (l *Ledger) CourseAverage(courseID string) (float64, bool, error) {
	e, ok := l.courses[courseID]
	if !ok {
		return 0, false, fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}

	grades := make([]float64, 0, len(e.roster))
	for _, rec := range e.roster {
		if domain.IsGraded(rec.Grade) {
			grades = append(grades, rec.Grade)
		}
	}
	avg, has := grading.Average(grades)
	return avg, has, nil
}

// HasCourse reports whether the course is registered.
func (l *Ledger) HasCourse(courseID string) bool {
	_, ok := l.courses[courseID]
	return ok
}

// IsEnrolled reports whether the student is in the course roster.
func (l *Ledger) IsEnrolled(courseID, studentID string) bool {
	e, ok := l.courses[courseID]
	if !ok {
		return false
	}
	_, ok = e.roster[studentID]
	return ok
}

// Course returns a copy of the course snapshot held by the ledger.
func (l *Ledger) Course(courseID string) (domain.CourseInfo, error) {
	e, ok := l.courses[courseID]
	if !ok {
		return domain.CourseInfo{}, fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}
	return e.info.Clone(), nil
}

// Roster returns a copy of the course roster keyed by student ID.
func (l *Ledger) Roster(courseID string) (map[string]domain.RegistrationRecord, error) {
	e, ok := l.courses[courseID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}
	out := make(map[string]domain.RegistrationRecord, len(e.roster))
	for id, rec := range e.roster {
		out[id] = rec
	}
	return out, nil
}

// CourseIDs returns the registered course IDs in ascending order.
func (l *Ledger) CourseIDs() []string {
	ids := make([]string, 0, len(l.courses))
	for id := range l.courses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered courses.
func (l *Ledger) Len() int {
	return len(l.courses)
}

func (l *Ledger) index(studentID, courseID string) {
	set, ok := l.byStudent[studentID]
	if !ok {
		set = make(map[string]struct{})
		l.byStudent[studentID] = set
	}
	set[courseID] = struct{}{}
}

func (l *Ledger) unindex(studentID, courseID string) {
	set, ok := l.byStudent[studentID]
	if !ok {
		return
	}
	delete(set, courseID)
	if len(set) == 0 {
		delete(l.byStudent, studentID)
	}
}

func (l *Ledger) unindexRoster(courseID string, roster map[string]domain.RegistrationRecord) {
	for studentID := range roster {
		l.unindex(studentID, courseID)
	}
}
