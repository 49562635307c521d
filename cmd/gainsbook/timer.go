// ABOUTME: CLI commands for the rest and workout timer.
// ABOUTME: Renders countdown and count-up ticks until completion or interrupt.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/harperreed/gainsbook/internal/viewmodel"
	"github.com/spf13/cobra"
)

const timerBarWidth = 20

var (
	timerPreset  string
	timerMinutes int
	timerSeconds int
	timerFor     time.Duration
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run a countdown or count-up timer",
	Long: `Run a rest timer. Press Ctrl-C to stop early.

PRESETS:

  1 min, 2 min, 3 min, 4 min, 5 min, 10 min, 15 min

Examples:
  gainsbook timer countdown                  # default preset from config
  gainsbook timer countdown --preset "3 min"
  gainsbook timer countdown --seconds 45
  gainsbook timer countup --for 90s`,
}

func choosePreset() (viewmodel.Preset, error) {
	switch {
	case timerSeconds > 0:
		return viewmodel.Preset{Label: fmt.Sprintf("%d s", timerSeconds), Seconds: int64(timerSeconds)}, nil
	case timerPreset != "":
		p, ok := viewmodel.PresetByLabel(timerPreset)
		if !ok {
			return viewmodel.Preset{}, fmt.Errorf("unknown preset %q", timerPreset)
		}
		return p, nil
	case timerMinutes > 0:
		p, ok := viewmodel.PresetByMinutes(timerMinutes)
		if !ok {
			return viewmodel.Preset{}, fmt.Errorf("no %d minute preset", timerMinutes)
		}
		return p, nil
	}
	if p, ok := viewmodel.PresetByMinutes(gb.Config.GetDefaultCountdown()); ok {
		return p, nil
	}
	return viewmodel.TimerPresets[0], nil
}

func progressBar(fraction float64) string {
	filled := int(fraction*timerBarWidth + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > timerBarWidth {
		filled = timerBarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", timerBarWidth-filled)
}

var timerCountdownCmd = &cobra.Command{
	Use:     "countdown",
	Aliases: []string{"down"},
	Short:   "Count down from a preset",
	RunE: func(cmd *cobra.Command, args []string) error {
		preset, err := choosePreset()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runCountdown(ctx, cmd.OutOrStdout(), preset)
	},
}

func runCountdown(ctx context.Context, out io.Writer, preset viewmodel.Preset) error {
	tm := viewmodel.NewTimerViewModel(ctx, gb.Deps())
	defer tm.Close()

	if err := tm.SetPreset(preset); err != nil {
		return err
	}
	if err := tm.StartCountDown(); err != nil {
		return err
	}

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	remaining := tm.Remaining.Subscribe(subCtx)
	states := tm.State.Subscribe(subCtx)

	render := func(r int64) {
		fmt.Fprintf(out, "\r%s %s ", viewmodel.FormatClock(r), cyan.Sprint(progressBar(tm.Fraction.Value())))
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			warn(out, "Stopped at %s", viewmodel.FormatClock(tm.Remaining.Value()))
			return nil
		case r, ok := <-remaining:
			if ok {
				render(r)
			}
		case s, ok := <-states:
			if ok && s == viewmodel.TimerIdle {
				render(tm.Remaining.Value())
				fmt.Fprintln(out)
				success(out, "Time's up (%s)", preset.Label)
				return nil
			}
		}
	}
}

var timerCountupCmd = &cobra.Command{
	Use:     "countup",
	Aliases: []string{"up"},
	Short:   "Count up from zero",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runCountup(ctx, cmd.OutOrStdout(), timerFor)
	},
}

// runCountup counts until limit has elapsed, or until ctx ends when limit is zero.
func runCountup(ctx context.Context, out io.Writer, limit time.Duration) error {
	tm := viewmodel.NewTimerViewModel(ctx, gb.Deps())
	defer tm.Close()

	if err := tm.StartCountUp(); err != nil {
		return err
	}

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	elapsed := tm.Elapsed.Subscribe(subCtx)
	limitSeconds := int64(limit / time.Second)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			warn(out, "Stopped at %s", viewmodel.FormatClock(tm.Elapsed.Value()))
			return nil
		case e, ok := <-elapsed:
			if !ok {
				continue
			}
			fmt.Fprintf(out, "\r%s ", viewmodel.FormatClock(e))
			if limitSeconds > 0 && e >= limitSeconds {
				_ = tm.Pause()
				fmt.Fprintln(out)
				success(out, "Counted %s", viewmodel.FormatClock(e))
				return nil
			}
		}
	}
}

func init() {
	timerCountdownCmd.Flags().StringVarP(&timerPreset, "preset", "p", "", `preset label, e.g. "2 min"`)
	timerCountdownCmd.Flags().IntVarP(&timerMinutes, "minutes", "m", 0, "preset length in minutes")
	timerCountdownCmd.Flags().IntVarP(&timerSeconds, "seconds", "s", 0, "custom length in seconds")

	timerCountupCmd.Flags().DurationVar(&timerFor, "for", 0, "stop after this long (default: until Ctrl-C)")

	timerCmd.AddCommand(timerCountdownCmd)
	timerCmd.AddCommand(timerCountupCmd)
	rootCmd.AddCommand(timerCmd)
}
