package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/events"
)

type gradePayload struct {
	Grade float64 `json:"grade"`
}

// AddEnrollment enrolls the student in an open course with an ungraded record.
func (r *Registrar) AddEnrollment(ctx context.Context, studentID, courseID string) error {
	r.mu.Lock()
	s, err := r.student(studentID)
	if err == nil {
		err = r.ledger.Enroll(courseID, s.Summary())
	}
	if err == nil {
		r.ledger.SyncSelectedCourses(s)
	}
	r.mu.Unlock()

	if err != nil {
		return NewServiceError("add_enrollment", "enrollment rejected", err)
	}

	r.emit(ctx, events.TypeEnrollmentAdded, courseID, studentID, nil)
	return nil
}

// DropEnrollment withdraws the student from a course in their selected courses.
func (r *Registrar) DropEnrollment(ctx context.Context, studentID, courseID string) error {
	r.mu.Lock()
	s, err := r.student(studentID)
	if err == nil {
		r.ledger.SyncSelectedCourses(s)
		if _, ok := s.SelectedCourses[courseID]; !ok {
			err = fmt.Errorf("%w: student %s, course %s", ErrNotSelected, studentID, courseID)
		}
	}
	if err == nil {
		err = r.ledger.Withdraw(courseID, studentID)
	}
	if err == nil {
		r.ledger.SyncSelectedCourses(s)
	}
	r.mu.Unlock()

	if err != nil {
		return NewServiceError("drop_enrollment", "withdrawal rejected", err)
	}

	r.emit(ctx, events.TypeEnrollmentDropped, courseID, studentID, nil)
	return nil
}

// RecordGrade sets the student's grade in a course after checking that it is
// a finite number in [0, 100].
func (r *Registrar) RecordGrade(ctx context.Context, courseID, studentID string, grade float64) error {
	if err := domain.ValidateGrade(grade); err != nil {
		return NewServiceError("record_grade", "invalid grade", err)
	}

	r.mu.Lock()
	_, err := r.student(studentID)
	if err == nil {
		err = r.ledger.SetGrade(courseID, studentID, grade)
	}
	r.mu.Unlock()

	if err != nil {
		return NewServiceError("record_grade", "grade rejected", err)
	}

	r.logger.DebugContext(ctx, "grade recorded",
		slog.String("course_id", courseID),
		slog.String("student_id", studentID),
		slog.Float64("grade", grade))
	r.emit(ctx, events.TypeGradeRecorded, courseID, studentID, gradePayload{Grade: grade})
	return nil
}
