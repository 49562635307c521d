// ABOUTME: View-model for the read-only workout screen.
// ABOUTME: Loads one workout with its exercises for display.
package viewmodel

import (
	"context"

	"github.com/harperreed/gainsbook/internal/models"
)

// ViewWorkoutViewModel shows one workout.
type ViewWorkoutViewModel struct {
	base

	// Workout is nil until loaded, and stays nil when the workout does not exist.
	Workout *State[*models.WorkoutWithExercises]
	Loaded  *State[bool]
}

func NewViewWorkoutViewModel(ctx context.Context, deps Deps) *ViewWorkoutViewModel {
	return &ViewWorkoutViewModel{
		base:    newBase(ctx, "view_workout", deps),
		Workout: NewState[*models.WorkoutWithExercises](nil),
		Loaded:  NewState(false),
	}
}

// Load fetches workoutID.
func (vm *ViewWorkoutViewModel) Load(workoutID int64) {
	vm.scope.Launch("load_workout", func(ctx context.Context) error {
		rows, err := vm.deps.Repo.GetWorkoutWithExercises(ctx, workoutID)
		if err != nil {
			return err
		}
		var w *models.WorkoutWithExercises
		if len(rows) > 0 {
			w = &rows[0]
		}
		vm.Workout.Set(w)
		vm.Loaded.Set(true)
		return nil
	})
}
