// ABOUTME: CLI command that renders a screen by its navigation route.
// ABOUTME: Prints the bottom navigation bar and then the screen's content.
package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/harperreed/gainsbook/internal/models"
	"github.com/harperreed/gainsbook/internal/nav"
	"github.com/harperreed/gainsbook/internal/viewmodel"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [route]",
	Short: "Render a screen by route",
	Long: `Render one screen of the app. Without a route the log screen opens.

ROUTES:

  log_screen                        this month's workouts
  stats_screen                      tracked lifts and the first lift's chart
  timer_screen                      timer presets
  profile_screen                    the profile
  view_workout_screen/{workoutID}   one workout
  edit_workout_screen/{workoutID}   one workout with edit hints
  new_workout_screen                how to log a workout
  new_statistic_screen              how to record a value`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := string(nav.StartRoute)
		if len(args) == 1 {
			path = args[0]
		}
		dest, err := nav.Parse(path)
		if err != nil {
			return err
		}
		return renderScreen(cmd.Context(), cmd.OutOrStdout(), dest)
	},
}

func renderNavBar(out io.Writer, current nav.Route) {
	items := make([]string, 0, len(nav.BottomNavItems))
	for _, item := range nav.BottomNavItems {
		if item.Route == current {
			items = append(items, cyan.Sprintf("[%s]", item.Title))
			continue
		}
		items = append(items, faint.Sprintf(" %s ", item.Title))
	}
	fmt.Fprintln(out, strings.Join(items, " "))
	fmt.Fprintln(out)
}

func requireWorkoutID(dest nav.Destination) error {
	if dest.WorkoutID == nav.NoWorkoutID {
		return fmt.Errorf("route %s needs a workout ID: %s", dest.Route, dest.Route.Pattern())
	}
	return nil
}

func renderScreen(ctx context.Context, out io.Writer, dest nav.Destination) error {
	renderNavBar(out, dest.Route)

	switch dest.Route {
	case nav.LogScreen:
		return renderLog(ctx, out, 0, 0)

	case nav.StatsScreen:
		vm, err := openStats(ctx)
		if err != nil {
			return err
		}
		defer vm.Close()
		renderVariables(out, vm.Variables.Value())
		fmt.Fprintln(out)
		renderChart(out, vm)
		return nil

	case nav.TimerScreen:
		bold.Fprintln(out, "Timer presets")
		for _, p := range viewmodel.TimerPresets {
			fmt.Fprintf(out, "  %s %s\n", padRight(p.Label, 7), faint.Sprint(viewmodel.FormatClock(p.Seconds)))
		}
		faint.Fprintln(out, "Start one with 'gainsbook timer countdown --preset \"2 min\"'.")
		return nil

	case nav.ProfileScreen:
		return renderProfile(ctx, out)

	case nav.ViewWorkoutScreen:
		if err := requireWorkoutID(dest); err != nil {
			return err
		}
		return renderWorkout(ctx, out, dest.WorkoutID)

	case nav.EditWorkoutScreen:
		if err := requireWorkoutID(dest); err != nil {
			return err
		}
		if err := renderWorkout(ctx, out, dest.WorkoutID); err != nil {
			return err
		}
		faint.Fprintf(out, "Edit with 'gainsbook workout edit %d --set N=text --remove N --add text'.\n", dest.WorkoutID)
		return nil

	case nav.NewWorkoutScreen:
		bold.Fprintf(out, "New workout %s\n", models.DateOf(gb.Deps().Clock.Now()))
		faint.Fprintln(out, "Log it with 'gainsbook workout add \"Squat 5x5 100kg\" \"Row 4x10\"'.")
		return nil

	case nav.NewStatScreen:
		vm, err := openStats(ctx)
		if err != nil {
			return err
		}
		defer vm.Close()
		bold.Fprintln(out, "New statistic")
		renderVariables(out, vm.Variables.Value())
		types := make([]string, 0, len(models.AllRepMaxTypes))
		for _, t := range models.AllRepMaxTypes {
			types = append(types, string(t))
		}
		fmt.Fprintf(out, "Types: %s\n", strings.Join(types, ", "))
		faint.Fprintln(out, "Record one with 'gainsbook stat add \"Bench press\" 5rm 85'.")
		return nil
	}
	return fmt.Errorf("no screen for route %s", dest.Route)
}

func init() {
	rootCmd.AddCommand(openCmd)
}
