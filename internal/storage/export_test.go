// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats and JSON import.
package storage

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedRepo(t, db)

	data, err := ExportJSON(context.Background(), db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if export.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", export.Version)
	}
	if export.Tool != "gainsbook" {
		t.Errorf("Expected tool gainsbook, got %s", export.Tool)
	}
	if len(export.Workouts) != 2 {
		t.Errorf("Expected 2 workouts, got %d", len(export.Workouts))
	}
	if len(export.Workouts[0].Exercises) != 2 {
		t.Errorf("Expected 2 exercises in first workout, got %d", len(export.Workouts[0].Exercises))
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedRepo(t, db)

	data, err := ExportYAML(context.Background(), db)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var parsed struct {
		Tool       string                   `yaml:"tool"`
		Years      []int                    `yaml:"years"`
		Workouts   []map[string]any         `yaml:"workouts"`
		Statistics map[string][]interface{} `yaml:"statistics"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}

	if parsed.Tool != "gainsbook" {
		t.Errorf("Expected tool gainsbook, got %s", parsed.Tool)
	}
	if len(parsed.Years) != 1 || parsed.Years[0] != 2024 {
		t.Errorf("Unexpected years: %v", parsed.Years)
	}
	if len(parsed.Workouts) != 2 {
		t.Errorf("Expected 2 workouts, got %d", len(parsed.Workouts))
	}
	if len(parsed.Statistics["Bench press"]) != 1 {
		t.Errorf("Expected statistics grouped under Bench press, got %v", parsed.Statistics)
	}
	if !strings.Contains(string(data), "date: \"2024-01-01\"") && !strings.Contains(string(data), "date: 2024-01-01") {
		t.Errorf("Expected ISO dates in YAML:\n%s", data)
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedRepo(t, db)

	md, err := ExportMarkdown(context.Background(), db)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	if !strings.Contains(md, "# Training Log") {
		t.Error("Expected title in markdown")
	}
	if !strings.Contains(md, "## 2024-02") || !strings.Contains(md, "## 2024-01") {
		t.Error("Expected month headings in markdown")
	}
	if strings.Index(md, "## 2024-02") > strings.Index(md, "## 2024-01") {
		t.Error("Expected newest month first")
	}
	if !strings.Contains(md, "- Squat 5x5") {
		t.Error("Expected exercise bullet in markdown")
	}
}

func TestExportMarkdownEmpty(t *testing.T) {
	db := setupTestDB(t)

	md, err := ExportMarkdown(context.Background(), db)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.Contains(md, "No workouts logged.") {
		t.Errorf("Expected empty notice, got:\n%s", md)
	}
}

func TestImportJSON(t *testing.T) {
	src := setupTestDB(t)
	seedRepo(t, src)
	ctx := context.Background()

	data, err := ExportJSON(ctx, src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	forEachBackend(t, func(t *testing.T, dst Repository) {
		if err := ImportJSON(ctx, dst, data); err != nil {
			t.Fatalf("ImportJSON failed: %v", err)
		}

		workouts, err := dst.ListAllWorkouts(ctx)
		if err != nil {
			t.Fatalf("ListAllWorkouts failed: %v", err)
		}
		if len(workouts) != 2 {
			t.Errorf("Expected 2 workouts, got %d", len(workouts))
		}

		id, err := dst.GetVariableIDByName(ctx, "Bench press")
		if err != nil {
			t.Fatalf("GetVariableIDByName failed: %v", err)
		}
		stats, err := dst.ListStatistics(ctx, id, "5rm", 1, 2024)
		if err != nil {
			t.Fatalf("ListStatistics failed: %v", err)
		}
		if len(stats) != 1 || stats[0].Value != 100 {
			t.Errorf("Unexpected statistics after import: %+v", stats)
		}

		// New rows continue after imported IDs
		next, err := dst.SaveWorkout(ctx, testDate, nil)
		if err != nil {
			t.Fatalf("SaveWorkout failed: %v", err)
		}
		for _, w := range workouts {
			if w.Workout.ID == next {
				t.Errorf("New workout reused imported ID %d", next)
			}
		}
	})
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)
	if err := ImportJSON(context.Background(), db, []byte("{not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
