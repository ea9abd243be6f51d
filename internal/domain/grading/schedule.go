package grading

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain"
)

var weekdayTitle = cases.Title(language.English)

var weekdayOrder = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// Lesson is one ordered meeting in a schedule entry.
type Lesson struct {
	Label     string
	Weekday   string
	StartTime string
	EndTime   string
}

// ScheduleEntry is the timetable view of one selected course.
type ScheduleEntry struct {
	CourseID   string
	CourseName string
	Department string
	Location   string
	Lessons    []Lesson
}

// NormalizeWeekday title-cases a weekday name ("MONDAY" -> "Monday").
func NormalizeWeekday(w string) string {
	return weekdayTitle.String(strings.TrimSpace(w))
}

// BuildSchedule projects the selected courses into per-course timetables.
// Courses are ordered by ID; lessons by weekday, start time, then label.
// Unknown weekday names sort after Sunday.
func BuildSchedule(courses map[string]domain.SelectedCourse) []ScheduleEntry {
	out := make([]ScheduleEntry, 0, len(courses))
	for id, c := range courses {
		entry := ScheduleEntry{
			CourseID:   id,
			CourseName: c.Information.Name,
			Department: c.Information.Department,
			Location:   c.Information.Location,
			Lessons:    make([]Lesson, 0, len(c.Information.Time)),
		}
		for label, slot := range c.Information.Time {
			entry.Lessons = append(entry.Lessons, Lesson{
				Label:     label,
				Weekday:   NormalizeWeekday(slot.Weekday),
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			})
		}
		sortLessons(entry.Lessons)
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out
}

func sortLessons(lessons []Lesson) {
	sort.Slice(lessons, func(i, j int) bool {
		a, b := lessons[i], lessons[j]
		if da, db := weekdayRank(a.Weekday), weekdayRank(b.Weekday); da != db {
			return da < db
		}
		if a.StartTime != b.StartTime {
			return startsBefore(a.StartTime, b.StartTime)
		}
		return a.Label < b.Label
	})
}

func weekdayRank(w string) int {
	if rank, ok := weekdayOrder[w]; ok {
		return rank
	}
	return len(weekdayOrder)
}

// startsBefore orders clock times chronologically so "8:30" precedes "10:00".
// Parseable times sort ahead of free-form ones, which keep string order.
func startsBefore(a, b string) bool {
	ta, errA := time.Parse("15:04", strings.TrimSpace(a))
	tb, errB := time.Parse("15:04", strings.TrimSpace(b))
	switch {
	case errA == nil && errB == nil:
		if !ta.Equal(tb) {
			return ta.Before(tb)
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
