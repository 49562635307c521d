// ABOUTME: View-model for editing an existing workout.
// ABOUTME: Loads the stored exercises on creation and rewrites the workout under the same ID on save.
package viewmodel

import (
	"context"
	"fmt"

	"github.com/harperreed/gainsbook/internal/models"
)

// EditWorkoutViewModel edits one stored workout.
type EditWorkoutViewModel struct {
	base
	exerciseEditor

	WorkoutID int64

	// Loaded becomes true once the initial load finished; Missing reports
	// that no workout with WorkoutID exists.
	Loaded  *State[bool]
	Missing *State[bool]
	Saved   *State[bool]
}

// NewEditWorkoutViewModel starts loading workoutID.
func NewEditWorkoutViewModel(ctx context.Context, deps Deps, workoutID int64) *EditWorkoutViewModel {
	vm := &EditWorkoutViewModel{
		base:           newBase(ctx, "edit_workout", deps),
		exerciseEditor: newExerciseEditor(models.WorkoutDate{}),
		WorkoutID:      workoutID,
		Loaded:         NewState(false),
		Missing:        NewState(false),
		Saved:          NewState(false),
	}
	vm.scope.Launch("load_workout", vm.load)
	return vm
}

func (vm *EditWorkoutViewModel) load(ctx context.Context) error {
	rows, err := vm.deps.Repo.GetWorkoutWithExercises(ctx, vm.WorkoutID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		vm.Missing.Set(true)
		vm.Loaded.Set(true)
		return nil
	}
	vm.mu.Lock()
	vm.Exercises.Set(models.ExercisesFromRows(rows[0].Exercises))
	vm.Date.Set(rows[0].Workout.Date())
	vm.mu.Unlock()
	vm.Loaded.Set(true)
	return nil
}

// Save replaces the stored workout with the edited date and exercises. It
// returns ErrNotLoaded before the initial load finished and ErrWorkoutMissing
// when the workout does not exist.
func (vm *EditWorkoutViewModel) Save() error {
	if !vm.Loaded.Value() {
		return ErrNotLoaded
	}
	if vm.Missing.Value() {
		return fmt.Errorf("%w: %d", ErrWorkoutMissing, vm.WorkoutID)
	}
	date, descriptions := vm.snapshot()
	vm.scope.Launch("replace_workout", func(ctx context.Context) error {
		unlock := vm.deps.Locks.Lock(vm.WorkoutID)
		err := vm.deps.Repo.ReplaceWorkout(ctx, vm.WorkoutID, date, descriptions)
		unlock()
		if err != nil {
			return err
		}
		if err := vm.deps.Repo.InsertYear(ctx, date.Year); err != nil {
			return err
		}
		vm.debug("workout replaced", "id", vm.WorkoutID, "exercises", len(descriptions))
		vm.Saved.Set(true)
		return nil
	})
	return nil
}
