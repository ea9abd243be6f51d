package grading

import (
	"sort"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
)

// ReportEntry is one course in a student's cross-course report.
type ReportEntry struct {
	CourseID   string
	CourseName string
	Grade      float64
}

// Report is a student's grades across courses. Average is only meaningful
// when HasAverage is true.
type Report struct {
	Entries    []ReportEntry
	Average    float64
	HasAverage bool
}

// Empty reports whether the student has no enrollment at all.
func (r Report) Empty() bool {
	return len(r.Entries) == 0
}

// BuildReport sorts entries by course ID and averages the graded ones.
func BuildReport(entries []ReportEntry) Report {
	sorted := make([]ReportEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CourseID < sorted[j].CourseID })

	grades := make([]float64, 0, len(sorted))
	for _, e := range sorted {
		if domain.IsGraded(e.Grade) {
			grades = append(grades, e.Grade)
		}
	}

	avg, ok := Average(grades)
	return Report{Entries: sorted, Average: avg, HasAverage: ok}
}

// Average returns the arithmetic mean, or false for an empty input.
func Average(grades []float64) (float64, bool) {
	if len(grades) == 0 {
		return 0, false
	}
	var sum float64
	for _, g := range grades {
		sum += g
	}
	return sum / float64(len(grades)), true
}

// CourseGrade is one row of the "grades and credits" listing.
type CourseGrade struct {
	CourseID string
	Name     string
	Credits  int
	Grade    float64
}

// GradeCredits lists every selected course with its credits and grade,
// ordered by course ID.
func GradeCredits(courses map[string]domain.SelectedCourse) []CourseGrade {
	out := make([]CourseGrade, 0, len(courses))
	for id, c := range courses {
		out = append(out, CourseGrade{
			CourseID: id,
			Name:     c.Information.Name,
			Credits:  c.Information.Credits,
			Grade:    c.Grade,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out
}
