// ABOUTME: CLI command that fills the log with sample or generated data.
// ABOUTME: Useful for trying the log, stats and export commands on a fresh install.
package main

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/harperreed/gainsbook/internal/models"
	"github.com/harperreed/gainsbook/internal/storage"
	"github.com/spf13/cobra"
)

var (
	seedRandom int
	seedYear   int
	seedSeed   int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add sample data",
	Long: `Add sample data to the current backend.

Without flags three February 2023 workouts and the years 2020 to 2023 are
written. With --random N, N generated workouts are spread over --year, each
with a matching rep-max statistic.

Examples:
  gainsbook seed
  gainsbook seed --random 40 --year 2024`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		var summary *storage.MigrateSummary
		var err error
		if seedRandom > 0 {
			year := seedYear
			if year == 0 {
				year = models.DateOf(gb.Deps().Clock.Now()).Year
			}
			summary, err = storage.SeedRandom(cmd.Context(), gb.Repo, gofakeit.New(seedSeed), seedRandom, year)
		} else {
			summary, err = storage.SeedSample(cmd.Context(), gb.Repo)
		}
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}

		success(out, "Seeded sample data")
		printSummary(out, summary)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedRandom, "random", 0, "generate this many random workouts")
	seedCmd.Flags().IntVar(&seedYear, "year", 0, "year for generated workouts (default: current)")
	seedCmd.Flags().Int64Var(&seedSeed, "seed", 0, "random seed (0 picks one)")
	rootCmd.AddCommand(seedCmd)
}
