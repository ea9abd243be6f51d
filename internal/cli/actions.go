package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain/grading"
)

func (m *Menu) registerStudent(ctx context.Context) error {
	id, err := m.prompt(ctx, "Please enter the student ID for check")
	if err != nil {
		return err
	}
	if m.reg.HasStudent(id) {
		m.println("$ This student has already been registered!")
		return nil
	}

	lastName, err := m.prompt(ctx, "Please give the student's last name")
	if err != nil {
		return err
	}
	firstName, err := m.prompt(ctx, "Please give the student's first name")
	if err != nil {
		return err
	}
	gender, err := m.prompt(ctx, "Please give the student's gender")
	if err != nil {
		return err
	}

	var birthday time.Time
	for {
		value, err := m.prompt(ctx, "Please give the student's birthday (YYYY-MM-DD)")
		if err != nil {
			return err
		}
		if birthday, err = domain.ParseBirthday(value); err == nil {
			break
		}
		m.println("$ Birthday invalid, the format is YYYY-MM-DD.")
	}

	department, err := m.prompt(ctx, "Please give the student's department")
	if err != nil {
		return err
	}

	student, err := domain.NewStudent(id, lastName, firstName, gender, birthday, department)
	if err == nil {
		err = m.reg.RegisterStudent(ctx, student)
	}
	if err != nil {
		m.printf("$ Registration failed: %v\n", err)
		return nil
	}

	m.printf("$ Student %s registered.\n", student.ID)
	return nil
}

func (m *Menu) modifyEnrollment(ctx context.Context) error {
	studentID, err := m.promptStudent(ctx, "Please give the student ID for modification")
	if err != nil {
		return err
	}

	mode, err := m.promptMode(ctx, "Please give your mode (1 for add, 2 for remove)", "1", "2")
	if err != nil {
		return err
	}

	if mode == "1" {
		courseID, err := m.prompt(ctx, "Please input the course ID to add")
		if err != nil {
			return err
		}
		if err := m.reg.AddEnrollment(ctx, studentID, courseID); err != nil {
			m.println("$ The course is not available!")
		}
	} else {
		courseID, err := m.prompt(ctx, "Please input the course ID to delete")
		if err != nil {
			return err
		}
		if err := m.reg.DropEnrollment(ctx, studentID, courseID); err != nil {
			m.println("$ The course is not available!")
		}
	}

	return m.printSchedule(studentID)
}

func (m *Menu) manageCourses(ctx context.Context) error {
	mode, err := m.promptMode(ctx, "Course management mode (1 for add, 2 for remove, 3 for score modification)",
		"1", "2", "3")
	if err != nil {
		return err
	}

	switch mode {
	case "1":
		return m.openCourse(ctx)
	case "2":
		courseID, err := m.promptCourse(ctx, "Please give the course ID to remove")
		if err != nil {
			return err
		}
		if err := m.reg.CloseCourse(ctx, courseID); err != nil {
			m.println("$ The course is not in the courses list, so you can't remove it.")
			return nil
		}
		m.println("$ The course is removed.")
	default:
		return m.recordGrade(ctx)
	}
	return nil
}

// openCourse opens a course for enrollment, describing it first when the
// catalog does not know it yet.
func (m *Menu) openCourse(ctx context.Context) error {
	courseID, err := m.prompt(ctx, "Please give the course ID to add")
	if err != nil {
		return err
	}

	if !m.reg.HasCourse(courseID) {
		m.printf("$ Course %s is not in the catalog, please describe it.\n", courseID)
		course, err := m.describeCourse(ctx, courseID)
		if err != nil {
			return err
		}
		if err := m.reg.CreateCourse(ctx, course); err != nil {
			m.printf("$ The course could not be created: %v\n", err)
			return nil
		}
	}

	if err := m.reg.OpenCourse(ctx, courseID); err != nil {
		m.printf("$ The course could not be opened: %v\n", err)
		return nil
	}
	m.println("$ The course is added into the courses list.")
	return nil
}

func (m *Menu) describeCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	name, err := m.prompt(ctx, "Course name")
	if err != nil {
		return nil, err
	}
	department, err := m.prompt(ctx, "Department")
	if err != nil {
		return nil, err
	}

	var credits int
	for {
		value, err := m.prompt(ctx, "Credits")
		if err != nil {
			return nil, err
		}
		if credits, err = strconv.Atoi(value); err == nil && credits > 0 {
			break
		}
		m.println("$ Please give a positive whole number.")
	}

	location, err := m.prompt(ctx, "Location")
	if err != nil {
		return nil, err
	}

	schedule := domain.Schedule{}
	for {
		label, err := m.prompt(ctx, "Lesson label (empty to finish)")
		if err != nil {
			return nil, err
		}
		if label == "" {
			break
		}
		weekday, err := m.prompt(ctx, "Weekday")
		if err != nil {
			return nil, err
		}
		start, err := m.prompt(ctx, "Start time (HH:MM)")
		if err != nil {
			return nil, err
		}
		end, err := m.prompt(ctx, "End time (HH:MM)")
		if err != nil {
			return nil, err
		}
		schedule[label] = domain.LessonSlot{Weekday: weekday, StartTime: start, EndTime: end}
	}

	return &domain.Course{
		ID:         courseID,
		Name:       name,
		Department: department,
		Credits:    credits,
		Schedule:   schedule,
		Location:   location,
	}, nil
}

func (m *Menu) recordGrade(ctx context.Context) error {
	studentID, err := m.promptStudent(ctx, "Please give the student ID")
	if err != nil {
		return err
	}
	courseID, err := m.promptCourse(ctx, "Please give the course ID")
	if err != nil {
		return err
	}

	var grade float64
	for {
		value, err := m.prompt(ctx, "Please give the score")
		if err != nil {
			return err
		}
		if grade, err = strconv.ParseFloat(value, 64); err == nil && domain.ValidateGrade(grade) == nil {
			break
		}
		m.println("$ Please give a valid score between 0 and 100.")
	}

	if err := m.reg.RecordGrade(ctx, courseID, studentID, grade); err != nil {
		m.println("$ The student is not in the course.")
		return nil
	}
	m.println("$ The score is recorded.")
	return nil
}

func (m *Menu) showSchedule(ctx context.Context) error {
	studentID, err := m.promptStudent(ctx, "Please give the student ID")
	if err != nil {
		return err
	}
	return m.printSchedule(studentID)
}

func (m *Menu) printSchedule(studentID string) error {
	entries, err := m.reg.Schedule(studentID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		m.println("$ The student has not selected any course.")
		return nil
	}

	m.printf("The schedule for student %s named %s:\n", studentID, m.studentName(studentID))
	for _, e := range entries {
		m.println(strings.Repeat("-", 60))
		m.printf("Course: %s %s (%s)\n", e.CourseID, e.CourseName, e.Department)
		for _, l := range e.Lessons {
			m.printf("  %s from %s to %s (%s)\n", l.Weekday, l.StartTime, l.EndTime, l.Label)
		}
		m.printf("Location: %s\n", e.Location)
	}
	m.println(strings.Repeat("-", 60))
	return nil
}

func (m *Menu) showGrades(ctx context.Context) error {
	studentID, err := m.promptStudent(ctx, "Please give the student ID")
	if err != nil {
		return err
	}

	courses, err := m.reg.GradeCredits(studentID)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		m.println("$ The student has not selected any course.")
		return nil
	}

	m.println("The grades for the selected courses:")
	for _, c := range courses {
		m.printf("  %s %s, %d credit(s): %s\n", c.CourseID, c.Name, c.Credits, formatGrade(c.Grade))
	}

	gpa, err := m.reg.GPA(studentID)
	switch {
	case err == nil:
		m.printf("The GPA score is %.2f with total credits %d.\n", gpa.Value, gpa.TotalCredits)
	case errors.Is(err, grading.ErrNoGradedCourses):
		m.printf("No graded course yet, total credits %d.\n", gpa.TotalCredits)
	default:
		return err
	}

	report, err := m.reg.CrossCourseReport(studentID)
	if err != nil {
		return err
	}
	if report.HasAverage {
		m.printf("The average score is %.2f.\n", report.Average)
	}
	return nil
}

func (m *Menu) studentName(id string) string {
	s, err := m.reg.Student(id)
	if err != nil {
		return id
	}
	return s.FullName()
}

func formatGrade(g float64) string {
	if !domain.IsGraded(g) {
		return "not graded"
	}
	return fmt.Sprintf("%g", g)
}
