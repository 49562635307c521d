// ABOUTME: Variable, Statistic and RepMaxType models for lift tracking.
// ABOUTME: A Variable is a named lift; Statistics are dated rep-max values for it.
package models

import "sort"

// RepMaxType labels the rep count a statistic's value is based on.
type RepMaxType string

const (
	RepMax10 RepMaxType = "10rm"
	RepMax5  RepMaxType = "5rm"
	RepMax1  RepMaxType = "1rm"

	// RepMaxNone is used by seed data that predates rep-max labels.
	RepMaxNone RepMaxType = "none"
)

// AllRepMaxTypes lists the selectable types, default first.
var AllRepMaxTypes = []RepMaxType{RepMax10, RepMax5, RepMax1}

// IsValidRepMaxType checks if a string is a selectable rep-max type.
func IsValidRepMaxType(s string) bool {
	for _, t := range AllRepMaxTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// DefaultVariableNames are seeded when the variable table is empty.
var DefaultVariableNames = []string{
	"Bench press",
	"Squat",
	"Deadlift",
	"Overhead press",
	"Chin up",
	"Seal row",
}

// Variable is a named trackable lift.
type Variable struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Statistic is one dated measurement for a Variable.
type Statistic struct {
	ID         int64      `json:"id" yaml:"id"`
	VariableID int64      `json:"variable_id" yaml:"variable_id"`
	Type       RepMaxType `json:"type" yaml:"type"`
	Value      float64    `json:"value" yaml:"value"`
	Day        int        `json:"day" yaml:"day"`
	Month      int        `json:"month" yaml:"month"`
	Year       int        `json:"year" yaml:"year"`
}

// NewStatistic creates a Statistic dated today.
func NewStatistic(variableID int64, t RepMaxType, value float64) *Statistic {
	s := &Statistic{
		VariableID: variableID,
		Type:       t,
		Value:      value,
	}
	return s.WithDate(Today())
}

// WithDate sets the date parts.
func (s *Statistic) WithDate(d WorkoutDate) *Statistic {
	s.Day, s.Month, s.Year = d.Day, d.Month, d.Year
	return s
}

// Date returns the statistic's date parts.
func (s Statistic) Date() WorkoutDate {
	return WorkoutDate{Day: s.Day, Month: s.Month, Year: s.Year}
}

// VariableWithStatistics is a variable joined with its statistics.
type VariableWithStatistics struct {
	Variable   Variable    `json:"variable" yaml:"variable"`
	Statistics []Statistic `json:"statistics" yaml:"statistics"`
}

// ChartPoint is one point of the statistics line chart.
type ChartPoint struct {
	Day   int
	Value float64
}

// ChartPoints orders statistics by day of month for plotting.
func ChartPoints(stats []Statistic) []ChartPoint {
	points := make([]ChartPoint, 0, len(stats))
	for _, s := range stats {
		points = append(points, ChartPoint{Day: s.Day, Value: s.Value})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Day < points[j].Day
	})
	return points
}

// BestValue returns the highest value, or false for an empty list.
func BestValue(stats []Statistic) (float64, bool) {
	if len(stats) == 0 {
		return 0, false
	}
	best := stats[0].Value
	for _, s := range stats[1:] {
		if s.Value > best {
			best = s.Value
		}
	}
	return best, true
}

// Lift is the legacy single-table form of a statistic, keyed by lift name.
type Lift struct {
	ID    int64      `json:"id" yaml:"id"`
	Lift  string     `json:"lift" yaml:"lift"`
	Type  RepMaxType `json:"type" yaml:"type"`
	Value float64    `json:"value" yaml:"value"`
	Day   int        `json:"day" yaml:"day"`
	Month int        `json:"month" yaml:"month"`
	Year  int        `json:"year" yaml:"year"`
}
