// ABOUTME: Tests for Statistic, Variable and chart helpers.
// ABOUTME: Covers rep-max validation, chart ordering and best value.
package models

import "testing"

func TestIsValidRepMaxType(t *testing.T) {
	for _, rt := range AllRepMaxTypes {
		if !IsValidRepMaxType(string(rt)) {
			t.Errorf("expected %s to be valid", rt)
		}
	}
	if IsValidRepMaxType("3rm") {
		t.Error("expected 3rm to be invalid")
	}
	if IsValidRepMaxType(string(RepMaxNone)) {
		t.Error("expected none to be reserved for seed data")
	}
}

func TestNewStatistic(t *testing.T) {
	s := NewStatistic(3, RepMax5, 100).WithDate(WorkoutDate{Day: 1, Month: 1, Year: 2024})

	if s.VariableID != 3 || s.Type != RepMax5 || s.Value != 100 {
		t.Errorf("unexpected statistic: %+v", s)
	}
	if s.Date() != (WorkoutDate{Day: 1, Month: 1, Year: 2024}) {
		t.Errorf("Date() = %v", s.Date())
	}
}

func TestChartPointsSortedByDay(t *testing.T) {
	stats := []Statistic{
		{Day: 20, Value: 85},
		{Day: 3, Value: 80},
		{Day: 11, Value: 82.5},
	}

	points := ChartPoints(stats)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for i, wantDay := range []int{3, 11, 20} {
		if points[i].Day != wantDay {
			t.Errorf("points[%d].Day = %d, want %d", i, points[i].Day, wantDay)
		}
	}
}

func TestBestValue(t *testing.T) {
	if _, ok := BestValue(nil); ok {
		t.Error("expected no best value for empty list")
	}

	best, ok := BestValue([]Statistic{{Value: 60}, {Value: 67.5}, {Value: 65}})
	if !ok || best != 67.5 {
		t.Errorf("BestValue = %v, %v; want 67.5, true", best, ok)
	}
}

func TestNewProfile(t *testing.T) {
	p := NewProfile("oskar", "lifts things").WithPicture("file:///me.png")

	if p.UserID != DefaultUserID {
		t.Errorf("UserID = %d, want %d", p.UserID, DefaultUserID)
	}
	if p.PictureURI != "file:///me.png" {
		t.Errorf("PictureURI = %q", p.PictureURI)
	}
}
