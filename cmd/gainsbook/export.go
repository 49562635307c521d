// ABOUTME: CLI commands for exporting and importing gainsbook data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and JSON import.
package main

import (
	"fmt"
	"os"

	"github.com/harperreed/gainsbook/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export gainsbook data",
	Long: `Export gainsbook data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Training log grouped by month (for sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  gainsbook export json                  # Export all data as JSON
  gainsbook export json -o backup.json   # Save to file
  gainsbook export markdown -o log.md    # Training log as Markdown`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(ctx, gb.Repo)
		case "yaml":
			data, err = storage.ExportYAML(ctx, gb.Repo)
		case "markdown", "md":
			var md string
			md, err = storage.ExportMarkdown(ctx, gb.Repo)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			success(out, "Exported to %s", exportOutput)
		} else {
			fmt.Fprintln(out, string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import gainsbook data from JSON",
	Long: `Import gainsbook data from a JSON backup file.

Records keep their IDs; an entry with the same ID as an existing one replaces it.

EXAMPLES:

  gainsbook import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := storage.ImportJSON(cmd.Context(), gb.Repo, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		success(cmd.OutOrStdout(), "Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
