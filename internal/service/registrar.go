package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain/grading"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/events"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/ledger"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/store"
)

// Deps are the collaborators a Registrar needs. Events may be nil.
type Deps struct {
	Courses    store.CourseStore
	Students   store.StudentStore
	Selections store.SelectionStore
	Ledger     store.LedgerStore
	Events     events.EventEmitter
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithLogger sets the registrar's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registrar) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithGPAPolicy sets how ungraded courses enter the GPA.
func WithGPAPolicy(policy grading.Policy) Option {
	return func(r *Registrar) {
		r.policy = policy
	}
}

// Registrar coordinates the catalog, the student registry and the ledger.
// All methods are safe for concurrent use.
type Registrar struct {
	deps   Deps
	policy grading.Policy
	logger *slog.Logger

	// ledgerLogger is handed to every ledger the registrar builds.
	ledgerLogger *slog.Logger

	mu       sync.Mutex
	courses  map[string]*domain.Course
	students map[string]*domain.Student
	ledger   *ledger.Ledger
}

// NewRegistrar creates a Registrar with an empty session.
// It returns an error if any of the required stores is nil.
func NewRegistrar(deps Deps, opts ...Option) (*Registrar, error) {
	if deps.Courses == nil {
		return nil, domain.NewValidationError("courses", "cannot be nil", domain.ErrValidation)
	}
	if deps.Students == nil {
		return nil, domain.NewValidationError("students", "cannot be nil", domain.ErrValidation)
	}
	if deps.Selections == nil {
		return nil, domain.NewValidationError("selections", "cannot be nil", domain.ErrValidation)
	}
	if deps.Ledger == nil {
		return nil, domain.NewValidationError("ledger", "cannot be nil", domain.ErrValidation)
	}

	r := &Registrar{
		deps:     deps,
		policy:   grading.ExcludeUngraded,
		logger:   slog.Default(),
		courses:  make(map[string]*domain.Course),
		students: make(map[string]*domain.Student),
	}
	for _, opt := range opts {
		opt(r)
	}
	if _, err := grading.ParsePolicy(string(r.policy)); err != nil {
		return nil, domain.NewValidationError("policy", err.Error(), domain.ErrValidation)
	}

	r.ledgerLogger = r.logger
	r.ledger = ledger.New(ledger.WithLogger(r.ledgerLogger))
	r.logger = r.logger.With(slog.String("component", "registrar"))
	return r, nil
}

// Initialize replaces the session state with what the stores hold: every
// course record, every student record and the ledger document. On error the
// session is left as it was.
func (r *Registrar) Initialize(ctx context.Context) error {
	courses, err := r.deps.Courses.List(ctx)
	if err != nil {
		return NewServiceError("initialize", "failed to load courses", err)
	}

	students, err := r.deps.Students.List(ctx)
	if err != nil {
		return NewServiceError("initialize", "failed to load students", err)
	}

	l := ledger.New(ledger.WithLogger(r.ledgerLogger))
	if err := r.deps.Ledger.Load(ctx, l); err != nil {
		return NewServiceError("initialize", "failed to load ledger", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.courses = make(map[string]*domain.Course, len(courses))
	for _, c := range courses {
		r.courses[c.ID] = c
	}
	r.students = make(map[string]*domain.Student, len(students))
	for _, s := range students {
		l.SyncSelectedCourses(s)
		r.students[s.ID] = s
	}
	r.ledger = l

	r.logger.InfoContext(ctx, "registrar initialized",
		slog.Int("course_count", len(r.courses)),
		slog.Int("student_count", len(r.students)),
		slog.Int("open_course_count", l.Len()))
	return nil
}

// Flush writes every course record, every student record with its freshly
// synced selected-courses export, and the ledger. It keeps going after a
// failure and returns all failures together.
func (r *Registrar) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result *multierror.Error

	for _, id := range sortedKeys(r.courses) {
		if err := r.deps.Courses.Save(ctx, r.courses[id]); err != nil {
			result = multierror.Append(result, fmt.Errorf("course %s: %w", id, err))
		}
	}

	for _, id := range sortedKeys(r.students) {
		s := r.students[id]
		r.ledger.SyncSelectedCourses(s)
		if err := r.deps.Selections.Save(ctx, id, s.SelectedCourses); err != nil {
			result = multierror.Append(result, fmt.Errorf("selected courses of %s: %w", id, err))
		}
		if err := r.deps.Students.Save(ctx, s); err != nil {
			result = multierror.Append(result, fmt.Errorf("student %s: %w", id, err))
		}
	}

	if err := r.deps.Ledger.Save(ctx, r.ledger); err != nil {
		result = multierror.Append(result, fmt.Errorf("ledger: %w", err))
	}

	if err := result.ErrorOrNil(); err != nil {
		r.logger.ErrorContext(ctx, "flush incomplete",
			slog.Int("failure_count", result.Len()),
			slog.String("error", err.Error()))
		return NewServiceError("flush", "failed to persist session", err)
	}

	r.logger.InfoContext(ctx, "session flushed",
		slog.Int("course_count", len(r.courses)),
		slog.Int("student_count", len(r.students)))
	return nil
}

// emit publishes an event. Failures are logged and do not undo the change.
func (r *Registrar) emit(ctx context.Context, eventType, courseID, studentID string, payload interface{}) {
	if r.deps.Events == nil {
		return
	}

	event, err := events.NewEvent(eventType, courseID, studentID, payload)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}

	if err := r.deps.Events.EmitEvent(ctx, event); err != nil {
		r.logger.WarnContext(ctx, "failed to emit event",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}

// student returns the registered student or ErrUnknownStudent. Callers hold mu.
func (r *Registrar) student(id string) (*domain.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStudent, id)
	}
	return s, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
