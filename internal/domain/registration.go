package domain

import (
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Ungraded is the grade sentinel meaning "enrolled but not yet graded".
const Ungraded float64 = -1

// Grade bounds accepted from the operator.
const (
	MinGrade float64 = 0
	MaxGrade float64 = 100
)

// StudentSummary is what the ledger needs to know about a student at
// enrollment time.
type StudentSummary struct {
	StudentID  string
	Name       string
	Department string
	Gender     string
}

// RegistrationRecord is one student's row in a course roster. Its presence
// means the student is enrolled.
type RegistrationRecord struct {
	Name       string  `json:"Name"`
	Grade      float64 `json:"Grade" validate:"eq=-1|gte=0,lte=100"`
	Department string  `json:"Department"`
	Gender     string  `json:"Gender"`
}

// NewRegistrationRecord returns an ungraded record for the summary.
func NewRegistrationRecord(s StudentSummary) RegistrationRecord {
	return RegistrationRecord{
		Name:       s.Name,
		Grade:      Ungraded,
		Department: s.Department,
		Gender:     s.Gender,
	}
}

// IsGraded reports whether the grade is a real grade rather than the sentinel.
func IsGraded(grade float64) bool {
	return grade != Ungraded
}

// ValidateGrade checks that grade is finite and within [MinGrade, MaxGrade].
func ValidateGrade(grade float64) error {
	if math.IsNaN(grade) || math.IsInf(grade, 0) {
		return NewValidationError("grade", "must be a finite number", ErrInvalidGrade)
	}
	if err := validate.Var(grade, "gte=0,lte=100"); err != nil {
		return NewValidationError("grade", "must be between 0 and 100", ErrInvalidGrade)
	}
	return nil
}
