// ABOUTME: View-model for the workout log screen.
// ABOUTME: Lists the workouts of the selected month and deletes workouts.
package viewmodel

import (
	"context"
	"sync"

	"github.com/harperreed/gainsbook/internal/models"
)

// LogViewModel lists workouts for one year and month.
type LogViewModel struct {
	base

	Workouts *State[[]models.WorkoutWithExercises]

	mu    sync.Mutex
	year  int
	month int
}

// NewLogViewModel creates a log filtered on the current month.
func NewLogViewModel(ctx context.Context, deps Deps) *LogViewModel {
	b := newBase(ctx, "log", deps)
	today := models.DateOf(b.deps.Clock.Now())
	return &LogViewModel{
		base:     b,
		Workouts: NewState[[]models.WorkoutWithExercises](nil),
		year:     today.Year,
		month:    today.Month,
	}
}

// Follow keeps the log filter in step with a SupportViewModel.
func (vm *LogViewModel) Follow(support *SupportViewModel) {
	vm.setFilter(support.CurrentYear.Value(), support.CurrentMonth.Value())
	support.OnFilterChange(func(year, month int) {
		vm.setFilter(year, month)
		vm.LoadWorkouts()
	})
}

// SetCurrentYear changes the filter year and reloads.
func (vm *LogViewModel) SetCurrentYear(year int) {
	vm.mu.Lock()
	vm.year = year
	vm.mu.Unlock()
	vm.LoadWorkouts()
}

// SetCurrentMonth changes the filter month and reloads.
func (vm *LogViewModel) SetCurrentMonth(month int) {
	vm.mu.Lock()
	vm.month = month
	vm.mu.Unlock()
	vm.LoadWorkouts()
}

// Filter returns the current (year, month).
func (vm *LogViewModel) Filter() (int, int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.year, vm.month
}

func (vm *LogViewModel) setFilter(year, month int) {
	vm.mu.Lock()
	vm.year, vm.month = year, month
	vm.mu.Unlock()
}

// LoadWorkouts refreshes the list for the current filter.
func (vm *LogViewModel) LoadWorkouts() {
	year, month := vm.Filter()
	vm.scope.Launch("load_workouts", func(ctx context.Context) error {
		return vm.load(ctx, year, month)
	})
}

func (vm *LogViewModel) load(ctx context.Context, year, month int) error {
	workouts, err := vm.deps.Repo.ListWorkoutsByYearMonth(ctx, year, month)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	// The filter moved on while this query ran; a newer load publishes instead.
	if vm.year != year || vm.month != month {
		return nil
	}
	vm.debug("workouts loaded", "year", year, "month", month, "count", len(workouts))
	vm.Workouts.Set(workouts)
	return nil
}

// DeleteWorkout removes a workout with its exercises and reloads the list.
func (vm *LogViewModel) DeleteWorkout(workoutID int64) {
	vm.scope.Launch("delete_workout", func(ctx context.Context) error {
		unlock := vm.deps.Locks.Lock(workoutID)
		err := vm.deps.Repo.RemoveWorkout(ctx, workoutID)
		unlock()
		if err != nil {
			return err
		}
		year, month := vm.Filter()
		return vm.load(ctx, year, month)
	})
}
