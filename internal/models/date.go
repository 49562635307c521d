// ABOUTME: WorkoutDate value type shared by workouts, exercises and statistics.
// ABOUTME: Handles parsing, validation and formatting of day/month/year triples.
package models

import (
	"fmt"
	"time"
)

// WorkoutDate mirrors the date columns of a workout while it is being edited.
type WorkoutDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// DateOf converts a time to a WorkoutDate in its own location.
func DateOf(t time.Time) WorkoutDate {
	return WorkoutDate{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// Today returns the current local date.
func Today() WorkoutDate {
	return DateOf(time.Now())
}

// ParseWorkoutDate parses a YYYY-MM-DD string.
func ParseWorkoutDate(s string) (WorkoutDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return WorkoutDate{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return DateOf(t), nil
}

// Valid reports whether the triple names a real calendar day.
func (d WorkoutDate) Valid() bool {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	t := d.Time()
	return t.Day() == d.Day && int(t.Month()) == d.Month && t.Year() == d.Year
}

// Time returns midnight UTC of the date.
func (d WorkoutDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d WorkoutDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
