// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs the stdio MCP server and optionally serves Prometheus metrics over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harperreed/gainsbook/internal/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var mcpMetricsAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout, so logs go to the rotating log file
(log_file in config.yaml, default ~/.local/state/gainsbook/gainsbook.log).

CONFIGURATION:

  {
    "mcpServers": {
      "gainsbook": {
        "command": "gainsbook",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_workout       Log a workout
  edit_workout      Replace a workout's exercises
  list_workouts     List a month's workouts
  get_workout       Get a workout with its exercises
  delete_workout    Delete a workout
  list_years        List log years
  add_year          Add a log year
  list_variables    List tracked lifts
  add_variable      Track a new lift
  add_statistic     Record a rep-max value
  list_statistics   List a lift's values for one month
  get_profile       Get the profile
  set_profile       Update the profile

AVAILABLE RESOURCES:

  gainsbook://workouts/recent   This month's workouts
  gainsbook://years             Log years
  gainsbook://variables         Tracked lifts with their values

METRICS:

  --metrics-addr :9090 serves Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(gb.Deps())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		if mcpMetricsAddr != "" {
			stop := serveMetrics(mcpMetricsAddr)
			defer stop()
		}

		return server.Serve(ctx)
	},
}

// serveMetrics exposes the App's registry and returns a shutdown func.
func serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gb.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger := gb.Logger
	go func() {
		logger.Info("metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func init() {
	mcpCmd.Flags().StringVar(&mcpMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	rootCmd.AddCommand(mcpCmd)
}
