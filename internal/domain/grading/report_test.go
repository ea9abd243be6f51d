package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
)

func TestBuildReport(t *testing.T) {
	t.Parallel()

	report := BuildReport([]ReportEntry{
		{CourseID: "CS102", CourseName: "Data Structures", Grade: 80},
		{CourseID: "CS101", CourseName: "Intro", Grade: 90},
		{CourseID: "CS103", CourseName: "Compilers", Grade: domain.Ungraded},
	})

	require.Len(t, report.Entries, 3)
	assert.Equal(t, "CS101", report.Entries[0].CourseID)
	assert.Equal(t, "CS103", report.Entries[2].CourseID)
	assert.True(t, report.HasAverage)
	assert.InDelta(t, 85.0, report.Average, 1e-9)
	assert.False(t, report.Empty())
}

func TestBuildReportWithoutData(t *testing.T) {
	t.Parallel()

	empty := BuildReport(nil)
	assert.True(t, empty.Empty())
	assert.False(t, empty.HasAverage)
	assert.Zero(t, empty.Average)

	ungraded := BuildReport([]ReportEntry{{CourseID: "CS101", Grade: domain.Ungraded}})
	assert.False(t, ungraded.Empty())
	assert.False(t, ungraded.HasAverage)
}

func TestAverage(t *testing.T) {
	t.Parallel()

	_, ok := Average(nil)
	assert.False(t, ok)

	avg, ok := Average([]float64{70, 80, 90})
	assert.True(t, ok)
	assert.InDelta(t, 80.0, avg, 1e-9)
}

func TestGradeCredits(t *testing.T) {
	t.Parallel()

	rows := GradeCredits(map[string]domain.SelectedCourse{
		"CS102": {Information: domain.CourseInfo{Name: "Data Structures", Credits: 4}, Grade: 80},
		"CS101": {Information: domain.CourseInfo{Name: "Intro", Credits: 3}, Grade: domain.Ungraded},
	})

	assert.Equal(t, []CourseGrade{
		{CourseID: "CS101", Name: "Intro", Credits: 3, Grade: domain.Ungraded},
		{CourseID: "CS102", Name: "Data Structures", Credits: 4, Grade: 80},
	}, rows)
}
