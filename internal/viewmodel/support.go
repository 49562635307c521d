// ABOUTME: Shared filter and date state used across the log and stats screens.
// ABOUTME: Tracks the year list, the selected year/month and the working date.
package viewmodel

import (
	"context"
	"fmt"
	"sync"

	"github.com/harperreed/gainsbook/internal/models"
)

// SupportViewModel holds cross-screen selections.
type SupportViewModel struct {
	base

	Years        *State[[]models.Year]
	CurrentYear  *State[int]
	CurrentMonth *State[int]
	Date         *State[models.WorkoutDate]

	mu        sync.Mutex
	listeners []func(year, month int)
}

// NewSupportViewModel starts with today's year, month and date.
func NewSupportViewModel(ctx context.Context, deps Deps) *SupportViewModel {
	b := newBase(ctx, "support", deps)
	today := models.DateOf(b.deps.Clock.Now())
	return &SupportViewModel{
		base:         b,
		Years:        NewState[[]models.Year](nil),
		CurrentYear:  NewState(today.Year),
		CurrentMonth: NewState(today.Month),
		Date:         NewState(today),
	}
}

// LoadYears refreshes the year list.
func (vm *SupportViewModel) LoadYears() {
	vm.scope.Launch("load_years", func(ctx context.Context) error {
		years, err := vm.deps.Repo.ListYears(ctx)
		if err != nil {
			return err
		}
		vm.Years.Set(years)
		return nil
	})
}

// InsertYear records a year and refreshes the list.
func (vm *SupportViewModel) InsertYear(year int) {
	vm.scope.Launch("insert_year", func(ctx context.Context) error {
		if err := vm.deps.Repo.InsertYear(ctx, year); err != nil {
			return err
		}
		years, err := vm.deps.Repo.ListYears(ctx)
		if err != nil {
			return err
		}
		vm.Years.Set(years)
		return nil
	})
}

// SetCurrentYear changes the filter year and notifies listeners.
func (vm *SupportViewModel) SetCurrentYear(year int) {
	vm.CurrentYear.Set(year)
	vm.notify()
}

// SetCurrentMonth changes the filter month and notifies listeners.
func (vm *SupportViewModel) SetCurrentMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}
	vm.CurrentMonth.Set(month)
	vm.notify()
	return nil
}

// SetDate changes the working date.
func (vm *SupportViewModel) SetDate(d models.WorkoutDate) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	vm.Date.Set(d)
	return nil
}

// OnFilterChange registers fn to run after the year or month changes.
func (vm *SupportViewModel) OnFilterChange(fn func(year, month int)) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.listeners = append(vm.listeners, fn)
}

func (vm *SupportViewModel) notify() {
	vm.mu.Lock()
	listeners := append([]func(int, int){}, vm.listeners...)
	vm.mu.Unlock()

	year, month := vm.CurrentYear.Value(), vm.CurrentMonth.Value()
	for _, fn := range listeners {
		fn(year, month)
	}
}
