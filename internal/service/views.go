package service

import (
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain/grading"
)

// SelectedCourses returns the student's courses and grades as held by the ledger.
func (r *Registrar) SelectedCourses(studentID string) (map[string]domain.SelectedCourse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.student(studentID)
	if err != nil {
		return nil, err
	}
	r.ledger.SyncSelectedCourses(s)
	return r.ledger.RosterSnapshot(studentID), nil
}

// Schedule returns the weekly lessons of the student's selected courses.
func (r *Registrar) Schedule(studentID string) ([]grading.ScheduleEntry, error) {
	selected, err := r.SelectedCourses(studentID)
	if err != nil {
		return nil, err
	}
	return grading.BuildSchedule(selected), nil
}

// GradeCredits lists grade and credits for each selected course.
func (r *Registrar) GradeCredits(studentID string) ([]grading.CourseGrade, error) {
	selected, err := r.SelectedCourses(studentID)
	if err != nil {
		return nil, err
	}
	return grading.GradeCredits(selected), nil
}

// GPA computes the student's credit-weighted GPA under the configured policy.
// The grading errors ErrNoCourses and ErrNoGradedCourses pass through unwrapped.
func (r *Registrar) GPA(studentID string) (grading.GPAResult, error) {
	selected, err := r.SelectedCourses(studentID)
	if err != nil {
		return grading.GPAResult{}, err
	}
	return grading.GPA(selected, r.policy)
}

// Policy returns the GPA policy in effect.
func (r *Registrar) Policy() grading.Policy {
	return r.policy
}

// CrossCourseReport lists the student's grade in every enrolled course.
func (r *Registrar) CrossCourseReport(studentID string) (grading.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.student(studentID); err != nil {
		return grading.Report{}, err
	}
	return r.ledger.StudentCrossCourseReport(studentID), nil
}

// CourseAverage averages the graded students of an open course. The boolean
// is false when nobody has been graded yet.
func (r *Registrar) CourseAverage(courseID string) (float64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.CourseAverage(courseID)
}
