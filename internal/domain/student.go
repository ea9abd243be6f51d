package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// BirthdayLayout is the on-disk and input format of a student's birthday.
const BirthdayLayout = "2006-01-02"

// Student-specific validation errors
var (
	// ErrStudentIDEmpty is returned when a student ID is empty.
	ErrStudentIDEmpty = errors.New("student ID cannot be empty")

	// ErrStudentNameEmpty is returned when both name parts are empty.
	ErrStudentNameEmpty = errors.New("student name cannot be empty")

	// ErrBirthdayEmpty is returned when a student has no birthday.
	ErrBirthdayEmpty = errors.New("student birthday cannot be empty")
)

// Student is a registered student. SelectedCourses is a derived cache rebuilt
// from the ledger before every read; it is never the source of truth.
type Student struct {
	ID         string
	LastName   string
	FirstName  string
	Gender     string
	Birthday   time.Time
	Department string

	SelectedCourses map[string]SelectedCourse
}

// SelectedCourse is one entry of a student's derived view: the joined course
// snapshot and the student's grade in it.
type SelectedCourse struct {
	Information CourseInfo `json:"Information"`
	Grade       float64    `json:"Grade"`
}

// NewStudent creates a Student and validates it.
func NewStudent(
	id, lastName, firstName, gender string,
	birthday time.Time,
	department string,
) (*Student, error) {
	student := &Student{
		ID:              strings.TrimSpace(id),
		LastName:        lastName,
		FirstName:       firstName,
		Gender:          gender,
		Birthday:        birthday,
		Department:      department,
		SelectedCourses: make(map[string]SelectedCourse),
	}

	if err := student.Validate(); err != nil {
		return nil, err
	}

	return student, nil
}

// Validate checks if the Student has valid data.
func (s *Student) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrStudentIDEmpty
	}

	if strings.TrimSpace(s.FirstName) == "" && strings.TrimSpace(s.LastName) == "" {
		return ErrStudentNameEmpty
	}

	if s.Birthday.IsZero() {
		return ErrBirthdayEmpty
	}

	return nil
}

// FullName returns "First Last".
func (s *Student) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", s.FirstName, s.LastName))
}

// Summary returns the registration input the ledger stores for this student.
func (s *Student) Summary() StudentSummary {
	return StudentSummary{
		StudentID:  s.ID,
		Name:       s.FullName(),
		Department: s.Department,
		Gender:     s.Gender,
	}
}

// ParseBirthday parses a YYYY-MM-DD date.
func ParseBirthday(value string) (time.Time, error) {
	t, err := time.Parse(BirthdayLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidBirthday, value, err)
	}
	return t, nil
}
