// ABOUTME: CLI commands for lift statistics.
// ABOUTME: Tracks lifts, records rep-max values and draws a monthly text chart.
package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/harperreed/gainsbook/internal/models"
	"github.com/harperreed/gainsbook/internal/viewmodel"
	"github.com/spf13/cobra"
)

const chartWidth = 30

var (
	statDate  string
	statType  string
	statYear  int
	statMonth int
)

var statCmd = &cobra.Command{
	Use:     "stat",
	Aliases: []string{"s"},
	Short:   "Track rep-max values for your lifts",
	Long: `Record and chart 10rm, 5rm and 1rm values for tracked lifts.

The first use seeds six lifts: Bench press, Squat, Deadlift, Overhead press,
Chin up and Seal row.

Examples:
  gainsbook stat variables
  gainsbook stat variable add "Front squat"
  gainsbook stat add "Bench press" 5rm 85 --date 2024-01-10
  gainsbook stat list "Bench press" --type 5rm --month 1 --year 2024`,
}

// openStats creates a stats view-model with its variables loaded.
func openStats(ctx context.Context) (*viewmodel.StatsViewModel, error) {
	vm := viewmodel.NewStatsViewModel(ctx, gb.Deps())
	if err := await(vm); err != nil {
		vm.Close()
		return nil, fmt.Errorf("failed to load variables: %w", err)
	}
	return vm, nil
}

var statVariablesCmd = &cobra.Command{
	Use:   "variables",
	Short: "List tracked lifts",
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, err := openStats(cmd.Context())
		if err != nil {
			return err
		}
		defer vm.Close()
		renderVariables(cmd.OutOrStdout(), vm.Variables.Value())
		return nil
	},
}

func renderVariables(out io.Writer, vars []models.Variable) {
	if len(vars) == 0 {
		fmt.Fprintln(out, "No lifts tracked.")
		return
	}
	for _, v := range vars {
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight(fmt.Sprint(v.ID), 4)), v.Name)
	}
}

var statVariableCmd = &cobra.Command{
	Use:   "variable",
	Short: "Manage tracked lifts",
}

var statVariableAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Start tracking a lift",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, err := openStats(cmd.Context())
		if err != nil {
			return err
		}
		defer vm.Close()

		name := strings.TrimSpace(args[0])
		for _, v := range vm.Variables.Value() {
			if strings.EqualFold(v.Name, name) {
				return fmt.Errorf("already tracking %s", v.Name)
			}
		}
		if err := vm.InsertVariable(name); err != nil {
			return err
		}
		if err := await(vm); err != nil {
			return fmt.Errorf("failed to add lift: %w", err)
		}

		success(cmd.OutOrStdout(), "Tracking %s", name)
		return nil
	},
}

var statAddCmd = &cobra.Command{
	Use:   "add <lift> <type> <value>",
	Short: "Record a rep-max value",
	Long: `Record a rep-max value for a tracked lift. Type is 10rm, 5rm or 1rm.

Examples:
  gainsbook stat add "Bench press" 5rm 85
  gainsbook stat add Squat 1rm 140 --date 2024-03-02`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		vm, err := openStats(cmd.Context())
		if err != nil {
			return err
		}
		defer vm.Close()

		if err := vm.SetNewValueText(args[2]); err != nil {
			return err
		}
		date := models.DateOf(gb.Deps().Clock.Now())
		if d, ok, err := parseDateFlag(statDate); err != nil {
			return err
		} else if ok {
			date = d
		}

		t := models.RepMaxType(strings.ToLower(args[1]))
		if err := vm.InsertStatistic(args[0], t, vm.NewValue.Value(), date); err != nil {
			return err
		}
		if err := await(vm); err != nil {
			return fmt.Errorf("failed to record %s: %w", args[0], err)
		}

		success(out, "Recorded %s %s: %g on %s", args[0], t, vm.NewValue.Value(), date)
		if best, ok := vm.Best(); ok {
			fmt.Fprintf(out, "  Best this month: %g\n", best)
		}
		return nil
	},
}

var statListCmd = &cobra.Command{
	Use:     "list <lift>",
	Aliases: []string{"ls"},
	Short:   "Chart a lift's values for one month",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, err := openStats(cmd.Context())
		if err != nil {
			return err
		}
		defer vm.Close()

		if err := vm.ChangeVariableByName(args[0]); err != nil {
			return err
		}
		if statType != "" {
			if err := vm.ChangeType(models.RepMaxType(strings.ToLower(statType))); err != nil {
				return err
			}
		}
		if statMonth != 0 {
			if err := vm.SetMonth(statMonth); err != nil {
				return err
			}
		}
		if statYear != 0 {
			vm.SetYear(statYear)
		}
		if err := await(vm); err != nil {
			return fmt.Errorf("failed to list statistics: %w", err)
		}

		renderChart(cmd.OutOrStdout(), vm)
		return nil
	},
}

// renderChart draws one bar per statistic, scaled to the month's best value.
func renderChart(out io.Writer, vm *viewmodel.StatsViewModel) {
	bold.Fprintf(out, "%s %s %04d-%02d\n", vm.Variable.Value().Name, vm.Type.Value(), vm.Year.Value(), vm.Month.Value())

	best, ok := vm.Best()
	if !ok {
		fmt.Fprintln(out, "No statistics found.")
		return
	}

	for _, p := range vm.ChartPoints() {
		width := 0
		if best > 0 {
			width = int(p.Value / best * chartWidth)
		}
		fmt.Fprintf(out, "%s %s %g\n", faint.Sprintf("%02d", p.Day), cyan.Sprint(strings.Repeat("█", width)), p.Value)
	}
	green.Fprintf(out, "Best: %g\n", best)
}

func init() {
	statAddCmd.Flags().StringVar(&statDate, "date", "", "date (YYYY-MM-DD, default: today)")

	statListCmd.Flags().StringVarP(&statType, "type", "t", "", "rep-max type: 10rm, 5rm or 1rm (default: 10rm)")
	statListCmd.Flags().IntVarP(&statYear, "year", "y", 0, "year (default: current)")
	statListCmd.Flags().IntVarP(&statMonth, "month", "m", 0, "month 1-12 (default: current)")

	statVariableCmd.AddCommand(statVariableAddCmd)
	statCmd.AddCommand(statVariablesCmd)
	statCmd.AddCommand(statVariableCmd)
	statCmd.AddCommand(statAddCmd)
	statCmd.AddCommand(statListCmd)
	rootCmd.AddCommand(statCmd)
}
