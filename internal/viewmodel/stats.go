// ABOUTME: View-model for the statistics screen.
// ABOUTME: Selects a variable, rep-max type and month, and records new rep-max values.
package viewmodel

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/harperreed/gainsbook/internal/models"
)

// StatsViewModel tracks the statistics selection and its results.
type StatsViewModel struct {
	base

	Variables  *State[[]models.Variable]
	Variable   *State[models.Variable]
	Type       *State[models.RepMaxType]
	Month      *State[int]
	Year       *State[int]
	Statistics *State[[]models.Statistic]
	NewValue   *State[float64]
	ValueError *State[error]

	// Ready becomes true once default variables are in place.
	Ready *State[bool]

	mu sync.Mutex
}

// NewStatsViewModel loads variables, seeding the defaults when none exist.
func NewStatsViewModel(ctx context.Context, deps Deps) *StatsViewModel {
	b := newBase(ctx, "stats", deps)
	today := models.DateOf(b.deps.Clock.Now())
	vm := &StatsViewModel{
		base:       b,
		Variables:  NewState[[]models.Variable](nil),
		Variable:   NewState(models.Variable{Name: "default"}),
		Type:       NewState(models.AllRepMaxTypes[0]),
		Month:      NewState(today.Month),
		Year:       NewState(today.Year),
		Statistics: NewState[[]models.Statistic](nil),
		NewValue:   NewState(0.0),
		ValueError: NewState[error](nil),
		Ready:      NewState(false),
	}
	vm.scope.Launch("init_variables", vm.initVariables)
	return vm
}

func (vm *StatsViewModel) initVariables(ctx context.Context) error {
	vars, err := vm.deps.Repo.ListVariables(ctx)
	if err != nil {
		return err
	}
	if len(vars) == 0 {
		vm.debug("seeding default variables")
		for _, name := range models.DefaultVariableNames {
			if _, err := vm.deps.Repo.InsertVariable(ctx, &models.Variable{Name: name}); err != nil {
				return err
			}
		}
		if vars, err = vm.deps.Repo.ListVariables(ctx); err != nil {
			return err
		}
	}
	vm.Variables.Set(vars)
	vm.mu.Lock()
	// a variable chosen while the list was loading wins over the default
	if len(vars) > 0 && vm.Variable.Value().ID == 0 {
		vm.Variable.Set(vars[0])
	}
	sel := vm.selectionLocked()
	vm.mu.Unlock()
	vm.Ready.Set(true)
	return vm.loadStatistics(ctx, sel)
}

type statsSelection struct {
	variableID int64
	t          models.RepMaxType
	month      int
	year       int
}

func (vm *StatsViewModel) selection() statsSelection {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.selectionLocked()
}

func (vm *StatsViewModel) selectionLocked() statsSelection {
	return statsSelection{
		variableID: vm.Variable.Value().ID,
		t:          vm.Type.Value(),
		month:      vm.Month.Value(),
		year:       vm.Year.Value(),
	}
}

// LoadStatistics refreshes the statistics for the current selection.
func (vm *StatsViewModel) LoadStatistics() {
	sel := vm.selection()
	vm.scope.Launch("load_statistics", func(ctx context.Context) error {
		return vm.loadStatistics(ctx, sel)
	})
}

func (vm *StatsViewModel) loadStatistics(ctx context.Context, sel statsSelection) error {
	stats, err := vm.deps.Repo.ListStatistics(ctx, sel.variableID, sel.t, sel.month, sel.year)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.selectionLocked() != sel {
		return nil
	}
	vm.Statistics.Set(stats)
	return nil
}

// ChangeVariable selects v and reloads.
func (vm *StatsViewModel) ChangeVariable(v models.Variable) {
	vm.mu.Lock()
	vm.Variable.Set(v)
	vm.mu.Unlock()
	vm.LoadStatistics()
}

// ChangeVariableByName selects the listed variable called name.
func (vm *StatsViewModel) ChangeVariableByName(name string) error {
	for _, v := range vm.Variables.Value() {
		if v.Name == name {
			vm.ChangeVariable(v)
			return nil
		}
	}
	return fmt.Errorf("unknown variable %q", name)
}

// ChangeType selects a rep-max type and reloads.
func (vm *StatsViewModel) ChangeType(t models.RepMaxType) error {
	if !models.IsValidRepMaxType(string(t)) {
		return fmt.Errorf("invalid type %q (use 10rm, 5rm or 1rm)", t)
	}
	vm.mu.Lock()
	vm.Type.Set(t)
	vm.mu.Unlock()
	vm.LoadStatistics()
	return nil
}

// SetMonth selects a month and reloads.
func (vm *StatsViewModel) SetMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}
	vm.mu.Lock()
	vm.Month.Set(month)
	vm.mu.Unlock()
	vm.LoadStatistics()
	return nil
}

// SetYear selects a year and reloads.
func (vm *StatsViewModel) SetYear(year int) {
	vm.mu.Lock()
	vm.Year.Set(year)
	vm.mu.Unlock()
	vm.LoadStatistics()
}

// InsertVariable adds a variable and refreshes the list.
func (vm *StatsViewModel) InsertVariable(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("variable name is empty")
	}
	vm.scope.Launch("insert_variable", func(ctx context.Context) error {
		if _, err := vm.deps.Repo.InsertVariable(ctx, &models.Variable{Name: name}); err != nil {
			return err
		}
		vars, err := vm.deps.Repo.ListVariables(ctx)
		if err != nil {
			return err
		}
		vm.Variables.Set(vars)
		return nil
	})
	return nil
}

// SetNewValueText parses the value typed for a new statistic. On failure
// ValueError is set and NewValue keeps its previous value.
func (vm *StatsViewModel) SetNewValueText(text string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		err = fmt.Errorf("invalid value %q: enter a number", text)
		vm.ValueError.Set(err)
		return err
	}
	vm.ValueError.Set(nil)
	vm.NewValue.Set(v)
	return nil
}

// InsertStatistic records a value for the named variable and switches the
// selection to that variable, type and month.
func (vm *StatsViewModel) InsertStatistic(variableName string, t models.RepMaxType, value float64, date models.WorkoutDate) error {
	if !models.IsValidRepMaxType(string(t)) {
		return fmt.Errorf("invalid type %q (use 10rm, 5rm or 1rm)", t)
	}
	if !date.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}
	vm.scope.Launch("insert_statistic", func(ctx context.Context) error {
		id, err := vm.deps.Repo.GetVariableIDByName(ctx, variableName)
		if err != nil {
			return err
		}
		s := models.NewStatistic(id, t, value).WithDate(date)
		if _, err := vm.deps.Repo.InsertStatistic(ctx, s); err != nil {
			return err
		}
		vm.debug("statistic inserted", "variable", variableName, "type", t, "value", value)
		vm.mu.Lock()
		vm.Variable.Set(models.Variable{ID: id, Name: variableName})
		vm.Type.Set(t)
		vm.Month.Set(date.Month)
		vm.Year.Set(date.Year)
		vm.mu.Unlock()
		return vm.loadStatistics(ctx, statsSelection{variableID: id, t: t, month: date.Month, year: date.Year})
	})
	return nil
}

// Best returns the highest value among the current statistics.
func (vm *StatsViewModel) Best() (float64, bool) {
	return models.BestValue(vm.Statistics.Value())
}

// ChartPoints returns the current statistics ordered by day.
func (vm *StatsViewModel) ChartPoints() []models.ChartPoint {
	return models.ChartPoints(vm.Statistics.Value())
}
