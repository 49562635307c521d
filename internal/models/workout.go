// ABOUTME: Workout and Exercise models for the training log.
// ABOUTME: Exercises are free-text entries that carry a copy of their workout's date.
package models

// Workout represents a dated training session.
type Workout struct {
	ID    int64 `json:"id" yaml:"id"`
	Day   int   `json:"day" yaml:"day"`
	Month int   `json:"month" yaml:"month"`
	Year  int   `json:"year" yaml:"year"`
}

// NewWorkout creates a Workout for the given date. ID 0 lets the store generate one.
func NewWorkout(date WorkoutDate) *Workout {
	return &Workout{
		Day:   date.Day,
		Month: date.Month,
		Year:  date.Year,
	}
}

// WithID sets an explicit workout ID, used when a workout is recreated after an edit.
func (w *Workout) WithID(id int64) *Workout {
	w.ID = id
	return w
}

// Date returns the workout's date parts.
func (w Workout) Date() WorkoutDate {
	return WorkoutDate{Day: w.Day, Month: w.Month, Year: w.Year}
}

// Exercise is one logged movement belonging to a workout.
type Exercise struct {
	ID          int64  `json:"id" yaml:"id"`
	WorkoutID   int64  `json:"workout_id" yaml:"workout_id"`
	Description string `json:"description" yaml:"description"`
	Day         int    `json:"day" yaml:"day"`
	Month       int    `json:"month" yaml:"month"`
	Year        int    `json:"year" yaml:"year"`
}

// NewExercise creates an Exercise tagged with its workout ID and date.
func NewExercise(workoutID int64, description string, date WorkoutDate) *Exercise {
	return &Exercise{
		WorkoutID:   workoutID,
		Description: description,
		Day:         date.Day,
		Month:       date.Month,
		Year:        date.Year,
	}
}

// Date returns the denormalized date parts.
func (e Exercise) Date() WorkoutDate {
	return WorkoutDate{Day: e.Day, Month: e.Month, Year: e.Year}
}

// WorkoutWithExercises is a workout joined with its exercise rows.
type WorkoutWithExercises struct {
	Workout   Workout    `json:"workout" yaml:"workout"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
}

// Descriptions returns the exercise descriptions in stored order.
func (w WorkoutWithExercises) Descriptions() []string {
	out := make([]string, 0, len(w.Exercises))
	for _, e := range w.Exercises {
		out = append(out, e.Description)
	}
	return out
}

// Year is a selectable year in the log filter.
type Year struct {
	Year int `json:"year" yaml:"year"`
}
