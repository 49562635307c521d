// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Reads everything from one backend and writes it to another, keeping IDs.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/harperreed/gainsbook/internal/config"
	"github.com/harperreed/gainsbook/internal/logging"
	"github.com/harperreed/gainsbook/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy all gainsbook data from one storage backend to another.

BACKENDS:

  sqlite   gainsbook.db in the data directory (default)
  badger   badger/ in the data directory
  charm    Charm Cloud key-value store, synced across devices

IMPORTANT:

  - IDs are preserved, so workout numbers stay the same
  - The destination must be empty unless --force is given
  - Run with --dry-run first to see what would be copied
  - Switch backends afterwards with 'backend:' in config.yaml or --backend

USAGE:

  gainsbook migrate --from sqlite --to badger --dry-run
  gainsbook migrate --from sqlite --to charm`,
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		from, to := strings.ToLower(migrateFrom), strings.ToLower(migrateTo)
		if from == "" || to == "" {
			return fmt.Errorf("both --from and --to are required")
		}
		if from == to {
			return fmt.Errorf("source and destination are both %s", from)
		}

		configDir := rootConfigDir
		if configDir == "" {
			configDir = config.ConfigDir()
		}
		cfg, err := config.LoadFrom(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if rootDataDir != "" {
			cfg.DataDir = rootDataDir
		}
		logger, logCloser, err := logging.New(logging.Params{Level: firstNonEmpty(rootLogLevel, cfg.GetLogLevel()), Prefix: "gainsbook"})
		if err != nil {
			return err
		}
		defer logCloser.Close()

		srcCfg, dstCfg := *cfg, *cfg
		srcCfg.Backend, dstCfg.Backend = from, to

		src, err := srcCfg.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", from, err)
		}
		dst, err := dstCfg.OpenStorage(logger)
		if err != nil {
			_ = src.Close()
			return fmt.Errorf("failed to open %s: %w", to, err)
		}

		runErr := runMigrate(cmd, out, src, dst, from, to)
		return multierr.Combine(runErr, src.Close(), dst.Close())
	},
}

func runMigrate(cmd *cobra.Command, out io.Writer, src, dst storage.Repository, from, to string) error {
	ctx := cmd.Context()

	existing, err := dst.GetAllData(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", to, err)
	}
	if !storage.Summarize(existing).Empty() && !migrateForce {
		return fmt.Errorf("%s already holds data (use --force to merge into it)", to)
	}

	if migrateDryRun {
		data, err := src.GetAllData(ctx)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", from, err)
		}
		warn(out, "Dry run - no changes will be made")
		printSummary(out, storage.Summarize(data))
		return nil
	}

	summary, err := storage.MigrateData(ctx, src, dst)
	if err != nil {
		return err
	}
	success(out, "Migrated %s to %s", from, to)
	printSummary(out, summary)
	return nil
}

func printSummary(out io.Writer, s *storage.MigrateSummary) {
	fmt.Fprintf(out, "  Workouts:   %d\n", s.Workouts)
	fmt.Fprintf(out, "  Exercises:  %d\n", s.Exercises)
	fmt.Fprintf(out, "  Years:      %d\n", s.Years)
	fmt.Fprintf(out, "  Variables:  %d\n", s.Variables)
	fmt.Fprintf(out, "  Statistics: %d\n", s.Statistics)
	fmt.Fprintf(out, "  Lifts:      %d\n", s.Lifts)
	fmt.Fprintf(out, "  Profile:    %t\n", s.Profile)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend: sqlite, badger or charm")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, badger or charm")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "copy into a destination that already holds data")
	rootCmd.AddCommand(migrateCmd)
}
