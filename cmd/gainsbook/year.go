// ABOUTME: CLI commands for the years shown in the log filter.
// ABOUTME: Supports add and list subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/harperreed/gainsbook/internal/viewmodel"
	"github.com/spf13/cobra"
)

var yearCmd = &cobra.Command{
	Use:   "year",
	Short: "Manage the years in the log filter",
	Long: `Years are recorded automatically when a workout is saved. Add one by hand
to browse a year before logging anything in it.`,
}

var yearAddCmd = &cobra.Command{
	Use:   "add <yyyy>",
	Short: "Add a year",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil || year < 1 || year > 9999 {
			return fmt.Errorf("invalid year: %s", args[0])
		}

		vm := viewmodel.NewSupportViewModel(cmd.Context(), gb.Deps())
		defer vm.Close()
		vm.InsertYear(year)
		if err := await(vm); err != nil {
			return fmt.Errorf("failed to add year: %w", err)
		}

		success(cmd.OutOrStdout(), "Added year %d", year)
		return nil
	},
}

var yearListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List years",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		vm := viewmodel.NewSupportViewModel(cmd.Context(), gb.Deps())
		defer vm.Close()
		vm.LoadYears()
		if err := await(vm); err != nil {
			return fmt.Errorf("failed to list years: %w", err)
		}

		years := vm.Years.Value()
		if len(years) == 0 {
			fmt.Fprintln(out, "No years found.")
			return nil
		}
		current := vm.CurrentYear.Value()
		for _, y := range years {
			if y.Year == current {
				cyan.Fprintf(out, "%d *\n", y.Year)
				continue
			}
			fmt.Fprintln(out, y.Year)
		}
		return nil
	},
}

func init() {
	yearCmd.AddCommand(yearAddCmd)
	yearCmd.AddCommand(yearListCmd)
	rootCmd.AddCommand(yearCmd)
}
