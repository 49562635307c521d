// ABOUTME: Tests for Workout, Exercise and WorkoutDate models.
// ABOUTME: Validates constructors, builders and date handling.
package models

import (
	"testing"
)

func TestNewWorkout(t *testing.T) {
	w := NewWorkout(WorkoutDate{Day: 10, Month: 2, Year: 2023})

	if w.ID != 0 {
		t.Errorf("ID = %d, want 0 so the store generates one", w.ID)
	}
	if w.Day != 10 || w.Month != 2 || w.Year != 2023 {
		t.Errorf("date = %v, want 2023-02-10", w.Date())
	}
}

func TestWorkoutWithID(t *testing.T) {
	w := NewWorkout(Today()).WithID(7)

	if w.ID != 7 {
		t.Errorf("ID = %d, want 7", w.ID)
	}
}

func TestNewExercise(t *testing.T) {
	date := WorkoutDate{Day: 12, Month: 2, Year: 2023}
	e := NewExercise(3, "Squat: 3x5 100 kg", date)

	if e.WorkoutID != 3 {
		t.Errorf("WorkoutID = %d, want 3", e.WorkoutID)
	}
	if e.Description != "Squat: 3x5 100 kg" {
		t.Errorf("Description = %q", e.Description)
	}
	if e.Day != 12 || e.Month != 2 || e.Year != 2023 {
		t.Error("expected exercise to carry the workout date")
	}
}

func TestWorkoutWithExercisesDescriptions(t *testing.T) {
	w := WorkoutWithExercises{
		Exercises: []Exercise{{Description: "A"}, {Description: "B"}},
	}

	got := w.Descriptions()
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Descriptions() = %v, want [A B]", got)
	}
}

func TestParseWorkoutDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    WorkoutDate
		wantErr bool
	}{
		{name: "valid", input: "2024-01-01", want: WorkoutDate{Day: 1, Month: 1, Year: 2024}},
		{name: "leap day", input: "2024-02-29", want: WorkoutDate{Day: 29, Month: 2, Year: 2024}},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "wrong order", input: "01-01-2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWorkoutDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseWorkoutDate(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWorkoutDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseWorkoutDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWorkoutDateValid(t *testing.T) {
	tests := []struct {
		date WorkoutDate
		want bool
	}{
		{WorkoutDate{Day: 31, Month: 1, Year: 2024}, true},
		{WorkoutDate{Day: 31, Month: 4, Year: 2024}, false},
		{WorkoutDate{Day: 0, Month: 1, Year: 2024}, false},
		{WorkoutDate{Day: 1, Month: 13, Year: 2024}, false},
		{WorkoutDate{}, false},
	}

	for _, tt := range tests {
		if got := tt.date.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestWorkoutDateString(t *testing.T) {
	d := WorkoutDate{Day: 5, Month: 3, Year: 2024}
	if d.String() != "2024-03-05" {
		t.Errorf("String() = %q, want 2024-03-05", d.String())
	}
}
