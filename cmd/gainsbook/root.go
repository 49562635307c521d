// ABOUTME: Root Cobra command for the gainsbook CLI.
// ABOUTME: Handles the App lifecycle via PersistentPre/PostRunE and holds shared output helpers.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gainsbook/internal/app"
	"github.com/spf13/cobra"
)

// skipAppAnnotation marks commands that manage storage themselves.
const skipAppAnnotation = "gainsbook/skip-app"

var (
	gb *app.App

	rootConfigDir string
	rootDataDir   string
	rootBackend   string
	rootLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "gainsbook",
	Short: "Workout log, lift statistics and training timer",
	Long: `Gainsbook is a training log for the terminal.

WHAT IT TRACKS:

  Workouts     dated sessions with one free-text line per exercise
  Statistics   10rm, 5rm and 1rm values for lifts you choose to track
  Profile      a username, description and picture for the local user

QUICK START:

  $ gainsbook workout add "Squat 5x5 100kg" "Bench 3x8 70kg"
  $ gainsbook workout list                  # this month's workouts
  $ gainsbook stat add "Bench press" 5rm 85
  $ gainsbook stat list "Bench press" --type 5rm
  $ gainsbook timer countdown --preset "2 min"

SCREENS:

  $ gainsbook open log_screen
  $ gainsbook open view_workout_screen/3

MCP INTEGRATION:

  Run 'gainsbook mcp' to start the Model Context Protocol server for use
  with MCP-compatible assistants:

  {
    "mcpServers": {
      "gainsbook": { "command": "gainsbook", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Configuration lives in ~/.config/gainsbook/config.yaml. The default
  sqlite backend stores ~/.local/share/gainsbook/gainsbook.db; the badger
  and charm backends are selected with --backend or the config file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip app init for commands that don't need it
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Annotations[skipAppAnnotation] != "" {
			return nil
		}

		var err error
		gb, err = app.New(app.Options{
			ConfigDir: rootConfigDir,
			DataDir:   rootDataDir,
			Backend:   rootBackend,
			LogLevel:  rootLogLevel,
			LogToFile: cmd.Name() == "mcp",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize gainsbook: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

func closeApp() error {
	if gb == nil {
		return nil
	}
	err := gb.Close()
	gb = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigDir, "config", "", "config directory (default: $XDG_CONFIG_HOME/gainsbook)")
	rootCmd.PersistentFlags().StringVar(&rootDataDir, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootBackend, "backend", "", "storage backend: sqlite, badger or charm")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

var (
	faint  = color.New(color.Faint)
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
)

func success(w io.Writer, format string, args ...interface{}) {
	green.Fprintf(w, "✓ "+format+"\n", args...)
}

func warn(w io.Writer, format string, args ...interface{}) {
	yellow.Fprintf(w, "⚠ "+format+"\n", args...)
}

// truncate shortens s to maxLen runes, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
