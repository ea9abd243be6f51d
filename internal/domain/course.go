package domain

import (
	"errors"
	"strings"
)

// Course-specific validation errors
var (
	// ErrCourseIDEmpty is returned when a course ID is empty.
	ErrCourseIDEmpty = errors.New("course ID cannot be empty")

	// ErrCourseNameEmpty is returned when a course name is empty.
	ErrCourseNameEmpty = errors.New("course name cannot be empty")

	// ErrInvalidCredits is returned when a course has zero or negative credits.
	ErrInvalidCredits = errors.New("course credits must be positive")

	// ErrInvalidLessonSlot is returned when a lesson slot is missing its weekday or times.
	ErrInvalidLessonSlot = errors.New("lesson slot requires weekday, start and end time")
)

// LessonSlot is one weekly meeting of a course. Times are free text such as "08:30".
type LessonSlot struct {
	Weekday   string `json:"Weekday" validate:"required"`
	StartTime string `json:"StartTime" validate:"required"`
	EndTime   string `json:"EndTime" validate:"required"`
}

// Schedule maps a lesson label (e.g. "Lesson-1") to its slot.
type Schedule map[string]LessonSlot

// Clone returns an independent copy of the schedule.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	for label, slot := range s {
		out[label] = slot
	}
	return out
}

// Course is the static identity and metadata of a course. Identity is ID.
type Course struct {
	ID         string
	Name       string
	Department string
	Credits    int
	Schedule   Schedule
	Location   string
}

// CourseInfo is the snapshot of a course kept inside a ledger entry and
// joined into a student's selected courses.
type CourseInfo struct {
	Name       string   `json:"Name" validate:"required"`
	Department string   `json:"Department"`
	Credits    int      `json:"Credits" validate:"gt=0"`
	Time       Schedule `json:"Time"`
	Location   string   `json:"Location"`
}

// Clone returns a copy of the info that shares no map with the receiver.
func (i CourseInfo) Clone() CourseInfo {
	i.Time = i.Time.Clone()
	return i
}

// NewCourse creates a Course and validates it.
func NewCourse(
	id, name, department string,
	credits int,
	schedule Schedule,
	location string,
) (*Course, error) {
	course := &Course{
		ID:         strings.TrimSpace(id),
		Name:       name,
		Department: department,
		Credits:    credits,
		Schedule:   schedule,
		Location:   location,
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	return course, nil
}

// Validate checks if the Course has valid data.
func (c *Course) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrCourseIDEmpty
	}

	if strings.TrimSpace(c.Name) == "" {
		return ErrCourseNameEmpty
	}

	if c.Credits <= 0 {
		return ErrInvalidCredits
	}

	for label, slot := range c.Schedule {
		if slot.Weekday == "" || slot.StartTime == "" || slot.EndTime == "" {
			return NewValidationError("schedule."+label, "is incomplete", ErrInvalidLessonSlot)
		}
	}

	return nil
}

// Info returns the ledger snapshot of the course.
func (c *Course) Info() CourseInfo {
	return CourseInfo{
		Name:       c.Name,
		Department: c.Department,
		Credits:    c.Credits,
		Time:       c.Schedule.Clone(),
		Location:   c.Location,
	}
}
