// ABOUTME: View-model for composing and saving a new workout.
// ABOUTME: Saving writes the workout with its exercises and records the workout's year.
package viewmodel

import (
	"context"

	"github.com/harperreed/gainsbook/internal/models"
)

// NewWorkoutViewModel edits an unsaved workout.
type NewWorkoutViewModel struct {
	base
	exerciseEditor

	// SavedID is the ID of the last saved workout, or 0.
	SavedID *State[int64]
}

// NewNewWorkoutViewModel starts an empty workout dated today.
func NewNewWorkoutViewModel(ctx context.Context, deps Deps) *NewWorkoutViewModel {
	b := newBase(ctx, "new_workout", deps)
	return &NewWorkoutViewModel{
		base:           b,
		exerciseEditor: newExerciseEditor(models.DateOf(b.deps.Clock.Now())),
		SavedID:        NewState[int64](0),
	}
}

// Save persists the workout and its exercises.
func (vm *NewWorkoutViewModel) Save() {
	date, descriptions := vm.snapshot()
	vm.scope.Launch("save_workout", func(ctx context.Context) error {
		id, err := vm.deps.Repo.SaveWorkout(ctx, date, descriptions)
		if err != nil {
			return err
		}
		if err := vm.deps.Repo.InsertYear(ctx, date.Year); err != nil {
			return err
		}
		vm.debug("workout saved", "id", id, "exercises", len(descriptions))
		vm.SavedID.Set(id)
		return nil
	})
}
