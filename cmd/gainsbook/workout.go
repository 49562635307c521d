// ABOUTME: CLI commands for managing workouts.
// ABOUTME: Supports add, list, show, edit and delete subcommands backed by the workout view-models.
package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/harperreed/gainsbook/internal/models"
	"github.com/harperreed/gainsbook/internal/viewmodel"
	"github.com/spf13/cobra"
)

var (
	workoutDate   string
	workoutYear   int
	workoutMonth  int
	workoutAdd    []string
	workoutSet    []string
	workoutRemove []int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Log training sessions as a date plus one free-text line per exercise.

WORKFLOW:

  1. Log a workout:        gainsbook workout add "Squat 5x5 100kg" "Row 4x10"
  2. Browse a month:       gainsbook workout list --month 2
  3. View one workout:     gainsbook workout show 3
  4. Fix a line:           gainsbook workout edit 3 --set 2="Row 4x12"

COMMANDS:

  add      Log a new workout
  list     List the workouts of one month
  show     View a workout with its exercises
  edit     Change a workout's exercises or date
  delete   Delete a workout`,
}

// waiter is implemented by every view-model.
type waiter interface {
	Wait()
	LastError() *viewmodel.State[error]
}

// await blocks until vm is idle and returns its last background error.
func await(vm waiter) error {
	vm.Wait()
	return vm.LastError().Value()
}

func parseDateFlag(value string) (models.WorkoutDate, bool, error) {
	if value == "" {
		return models.WorkoutDate{}, false, nil
	}
	d, err := models.ParseWorkoutDate(value)
	return d, true, err
}

func parseWorkoutID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid workout ID: %s", arg)
	}
	return id, nil
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <exercise>...",
	Short: "Log a new workout",
	Long: `Log a new workout. Each argument becomes one exercise line.

Examples:
  gainsbook workout add "Bench press: 5x5 80 kg" "Pull up: 10, 8, 6"
  gainsbook workout add "Squat 3x5 100kg" --date 2024-01-31`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		vm := viewmodel.NewNewWorkoutViewModel(cmd.Context(), gb.Deps())
		defer vm.Close()

		for _, a := range args {
			if _, err := vm.AddExercise(a); err != nil {
				return fmt.Errorf("invalid exercise %q: %w", a, err)
			}
		}
		date, ok, err := parseDateFlag(workoutDate)
		if err != nil {
			return err
		}
		if ok {
			if err := vm.SetDate(date); err != nil {
				return err
			}
		}

		vm.Save()
		if err := await(vm); err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}

		success(out, "Logged workout on %s", vm.Date.Value())
		fmt.Fprintf(out, "  ID: %d\n", vm.SavedID.Value())
		fmt.Fprintf(out, "  Exercises: %d\n", len(vm.Exercises.Value()))
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the workouts of one month",
	Long: `List workouts for a year and month, defaulting to the current month.

Examples:
  gainsbook workout list
  gainsbook workout list --year 2023 --month 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderLog(cmd.Context(), cmd.OutOrStdout(), workoutYear, workoutMonth)
	},
}

func renderLog(ctx context.Context, out io.Writer, year, month int) error {
	if month < 0 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}
	vm := viewmodel.NewLogViewModel(ctx, gb.Deps())
	defer vm.Close()

	if year == 0 && month == 0 {
		vm.LoadWorkouts()
	}
	if year != 0 {
		vm.SetCurrentYear(year)
	}
	if month != 0 {
		vm.SetCurrentMonth(month)
	}
	if err := await(vm); err != nil {
		return fmt.Errorf("failed to list workouts: %w", err)
	}

	y, m := vm.Filter()
	workouts := vm.Workouts.Value()
	bold.Fprintf(out, "Workouts %04d-%02d\n", y, m)
	if len(workouts) == 0 {
		fmt.Fprintln(out, "No workouts found.")
		return nil
	}

	for _, w := range workouts {
		fmt.Fprintf(out, "%s %s %s\n",
			faint.Sprint(padRight(strconv.FormatInt(w.Workout.ID, 10), 5)),
			w.Workout.Date(),
			truncate(strings.Join(w.Descriptions(), "; "), 60))
	}
	return nil
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout with its exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWorkoutID(args[0])
		if err != nil {
			return err
		}
		return renderWorkout(cmd.Context(), cmd.OutOrStdout(), id)
	},
}

func renderWorkout(ctx context.Context, out io.Writer, id int64) error {
	vm := viewmodel.NewViewWorkoutViewModel(ctx, gb.Deps())
	defer vm.Close()

	vm.Load(id)
	if err := await(vm); err != nil {
		return fmt.Errorf("failed to get workout: %w", err)
	}
	w := vm.Workout.Value()
	if w == nil {
		return fmt.Errorf("workout not found: %d", id)
	}

	bold.Fprintf(out, "Workout %d\n", w.Workout.ID)
	fmt.Fprintf(out, "Date: %s\n", w.Workout.Date())
	if len(w.Exercises) == 0 {
		faint.Fprintln(out, "No exercises.")
		return nil
	}
	fmt.Fprintln(out, "Exercises:")
	for i, e := range w.Exercises {
		fmt.Fprintf(out, "  %s %s\n", faint.Sprintf("%2d.", i+1), e.Description)
	}
	return nil
}

var workoutEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a workout's exercises or date",
	Long: `Edit a workout in place. Exercises are addressed by their number in
'gainsbook workout show'. Changes apply in this order: --set, --remove, --add.
The workout keeps its ID.

Examples:
  gainsbook workout edit 3 --set 2="Row 4x12"
  gainsbook workout edit 3 --remove 1 --add "Face pull 3x15"
  gainsbook workout edit 3 --date 2024-02-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		id, err := parseWorkoutID(args[0])
		if err != nil {
			return err
		}
		if len(workoutSet) == 0 && len(workoutRemove) == 0 && len(workoutAdd) == 0 && workoutDate == "" {
			return fmt.Errorf("nothing to change (use --set, --remove, --add or --date)")
		}

		vm := viewmodel.NewEditWorkoutViewModel(cmd.Context(), gb.Deps(), id)
		defer vm.Close()
		if err := await(vm); err != nil {
			return fmt.Errorf("failed to load workout: %w", err)
		}
		if vm.Missing.Value() {
			return fmt.Errorf("workout not found: %d", id)
		}

		if err := applyEdits(vm, workoutSet, workoutRemove, workoutAdd); err != nil {
			return err
		}
		date, ok, err := parseDateFlag(workoutDate)
		if err != nil {
			return err
		}
		if ok {
			if err := vm.SetDate(date); err != nil {
				return err
			}
		}

		if err := vm.Save(); err != nil {
			return err
		}
		if err := await(vm); err != nil {
			return fmt.Errorf("failed to update workout: %w", err)
		}

		success(out, "Updated workout %d", id)
		return renderWorkout(cmd.Context(), out, id)
	},
}

// applyEdits resolves 1-based exercise numbers against the loaded list before
// changing anything, so removals never shift the targets of later edits.
func applyEdits(vm *viewmodel.EditWorkoutViewModel, sets []string, removes []int, adds []string) error {
	list := vm.Exercises.Value()
	byNumber := func(n int) (models.ExerciseWithIndex, error) {
		if n < 1 || n > len(list) {
			return models.ExerciseWithIndex{}, fmt.Errorf("no exercise number %d (workout has %d)", n, len(list))
		}
		return list[n-1], nil
	}

	for _, s := range sets {
		num, text, found := strings.Cut(s, "=")
		if !found {
			return fmt.Errorf("invalid --set %q (use N=text)", s)
		}
		n, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil {
			return fmt.Errorf("invalid --set %q (use N=text)", s)
		}
		e, err := byNumber(n)
		if err != nil {
			return err
		}
		if err := vm.EditExercise(e.Key, text); err != nil {
			return err
		}
	}

	sorted := append([]int(nil), removes...)
	sort.Ints(sorted)
	for i, n := range sorted {
		if i > 0 && sorted[i-1] == n {
			continue
		}
		e, err := byNumber(n)
		if err != nil {
			return err
		}
		if err := vm.DeleteExercise(e.Key); err != nil {
			return err
		}
	}

	for _, a := range adds {
		if _, err := vm.AddExercise(a); err != nil {
			return fmt.Errorf("invalid exercise %q: %w", a, err)
		}
	}
	return nil
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout and its exercises",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWorkoutID(args[0])
		if err != nil {
			return err
		}
		rows, err := gb.Repo.GetWorkoutWithExercises(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("workout not found: %d", id)
		}

		vm := viewmodel.NewLogViewModel(cmd.Context(), gb.Deps())
		defer vm.Close()
		vm.DeleteWorkout(id)
		if err := await(vm); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		success(cmd.OutOrStdout(), "Deleted workout %d", id)
		return nil
	},
}

func init() {
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "workout date (YYYY-MM-DD, default: today)")

	workoutListCmd.Flags().IntVarP(&workoutYear, "year", "y", 0, "year (default: current)")
	workoutListCmd.Flags().IntVarP(&workoutMonth, "month", "m", 0, "month 1-12 (default: current)")

	workoutEditCmd.Flags().StringVar(&workoutDate, "date", "", "new workout date (YYYY-MM-DD)")
	workoutEditCmd.Flags().StringArrayVar(&workoutAdd, "add", nil, "append an exercise (repeatable)")
	workoutEditCmd.Flags().StringArrayVar(&workoutSet, "set", nil, "replace exercise N with text, as N=text (repeatable)")
	workoutEditCmd.Flags().IntSliceVar(&workoutRemove, "remove", nil, "remove exercise N (repeatable)")

	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutEditCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
