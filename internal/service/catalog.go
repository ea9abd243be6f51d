package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/events"
)

// RegisterStudent adds a new student to the registry. The record is written
// to the student store on the next Flush.
func (r *Registrar) RegisterStudent(ctx context.Context, student *domain.Student) error {
	if err := student.Validate(); err != nil {
		return NewServiceError("register_student", "invalid student", err)
	}

	r.mu.Lock()
	if _, ok := r.students[student.ID]; ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrStudentExists, student.ID)
	}
	s := *student
	s.SelectedCourses = make(map[string]domain.SelectedCourse)
	r.ledger.SyncSelectedCourses(&s)
	r.students[s.ID] = &s
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "student registered", slog.String("student_id", s.ID))
	r.emit(ctx, events.TypeStudentRegistered, "", s.ID, s.Summary())
	return nil
}

// Student returns a copy of the student with a freshly synced selected-courses view.
func (r *Registrar) Student(id string) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.student(id)
	if err != nil {
		return nil, err
	}
	r.ledger.SyncSelectedCourses(s)

	out := *s
	out.SelectedCourses = make(map[string]domain.SelectedCourse, len(s.SelectedCourses))
	for k, v := range s.SelectedCourses {
		v.Information = v.Information.Clone()
		out.SelectedCourses[k] = v
	}
	return &out, nil
}

// HasStudent reports whether the student is registered.
func (r *Registrar) HasStudent(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.students[id]
	return ok
}

// CreateCourse validates the course, adds it to the catalog and writes its
// record. Creating an existing ID replaces the catalog entry; an open course
// keeps its ledger snapshot until it is opened again.
func (r *Registrar) CreateCourse(ctx context.Context, course *domain.Course) error {
	if err := course.Validate(); err != nil {
		return NewServiceError("create_course", "invalid course", err)
	}

	c := *course
	c.Schedule = course.Schedule.Clone()
	if err := r.deps.Courses.Save(ctx, &c); err != nil {
		return NewServiceError("create_course", "failed to save course", err)
	}

	r.mu.Lock()
	r.courses[c.ID] = &c
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "course created", slog.String("course_id", c.ID))
	r.emit(ctx, events.TypeCourseCreated, c.ID, "", c.Info())
	return nil
}

// Course returns a copy of the catalog entry.
func (r *Registrar) Course(id string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.courses[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCourse, id)
	}
	out := *c
	out.Schedule = c.Schedule.Clone()
	return &out, nil
}

// HasCourse reports whether the course is in the catalog.
func (r *Registrar) HasCourse(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.courses[id]
	return ok
}

// IsOpen reports whether the course is open for enrollment.
func (r *Registrar) IsOpen(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.HasCourse(id)
}

// OpenCourse puts a catalog course into the ledger with an empty roster.
// Opening an already open course discards its roster.
func (r *Registrar) OpenCourse(ctx context.Context, id string) error {
	r.mu.Lock()
	c, ok := r.courses[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownCourse, id)
	}
	r.ledger.RegisterCourse(c)
	r.mu.Unlock()

	r.emit(ctx, events.TypeCourseOpened, id, "", nil)
	return nil
}

// CloseCourse removes the course and its roster from the ledger. The catalog
// entry is kept.
func (r *Registrar) CloseCourse(ctx context.Context, id string) error {
	r.mu.Lock()
	err := r.ledger.DeregisterCourse(id)
	r.mu.Unlock()
	if err != nil {
		return NewServiceError("close_course", "course is not open", err)
	}

	r.emit(ctx, events.TypeCourseClosed, id, "", nil)
	return nil
}
