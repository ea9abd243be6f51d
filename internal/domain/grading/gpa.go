package grading

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
)

// Common errors
var (
	ErrNoCourses       = errors.New("student has not selected any course")
	ErrNoGradedCourses = errors.New("student has no graded course")
	ErrInvalidPolicy   = errors.New("invalid GPA policy")
)

// Policy decides how ungraded (-1) courses enter the GPA.
type Policy string

const (
	// IncludeUngraded counts the sentinel as a grade, so an ungraded course
	// contributes -1 * credits to the numerator.
	IncludeUngraded Policy = "include_ungraded"
	// ExcludeUngraded leaves ungraded courses out of numerator and denominator.
	ExcludeUngraded Policy = "exclude_ungraded"
)

// ParsePolicy parses a policy name (case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case IncludeUngraded:
		return IncludeUngraded, nil
	case ExcludeUngraded, "":
		return ExcludeUngraded, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// GPAResult is a computed grade point average.
type GPAResult struct {
	Value float64
	// TotalCredits is the sum of credits over every selected course.
	TotalCredits int
	// GradedCredits is the denominator actually used.
	GradedCredits int
}

// GPA returns the credit-weighted mean sum(grade*credits)/sum(credits).
func GPA(courses map[string]domain.SelectedCourse, policy Policy) (GPAResult, error) {
	if len(courses) == 0 {
		return GPAResult{}, ErrNoCourses
	}

	var (
		result  GPAResult
		weighed float64
	)
	for _, c := range courses {
		credits := c.Information.Credits
		result.TotalCredits += credits

		if policy != IncludeUngraded && !domain.IsGraded(c.Grade) {
			continue
		}
		weighed += c.Grade * float64(credits)
		result.GradedCredits += credits
	}

	if result.GradedCredits == 0 {
		return result, ErrNoGradedCourses
	}

	result.Value = weighed / float64(result.GradedCredits)
	return result, nil
}
