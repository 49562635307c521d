// ABOUTME: Integration tests for the gainsbook CLI binary.
// ABOUTME: Builds the binary and drives a full log, stats and migrate workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "gainsbook")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/gainsbook")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	configDir := t.TempDir()
	dataDir := t.TempDir()

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--config", configDir, "--data-dir", dataDir}, args...)
		cmd := exec.Command(binary, fullArgs...)
		cmd.Env = append(os.Environ(), "NO_COLOR=1")
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	output, err := run("workout", "add", "Squat 5x5 100kg", "Row 4x10", "--date", "2024-03-05")
	if err != nil {
		t.Fatalf("Failed to add workout: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Logged workout on 2024-03-05") {
		t.Errorf("Expected 'Logged workout' in output, got: %s", output)
	}

	output, err = run("workout", "edit", "1", "--set", "2=Row 4x12")
	if err != nil {
		t.Fatalf("Failed to edit workout: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Row 4x12") {
		t.Errorf("Expected edited exercise in output, got: %s", output)
	}

	output, err = run("workout", "list", "--year", "2024", "--month", "3")
	if err != nil {
		t.Fatalf("Failed to list workouts: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Squat 5x5 100kg; Row 4x12") {
		t.Errorf("Expected workout in list output, got: %s", output)
	}

	output, err = run("stat", "add", "Squat", "5rm", "120", "--date", "2024-03-05")
	if err != nil {
		t.Fatalf("Failed to add statistic: %v\n%s", err, output)
	}

	output, err = run("stat", "list", "Squat", "--type", "5rm", "--year", "2024", "--month", "3")
	if err != nil {
		t.Fatalf("Failed to chart statistics: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Best: 120") {
		t.Errorf("Expected 'Best: 120' in chart, got: %s", output)
	}

	output, err = run("migrate", "--from", "sqlite", "--to", "badger")
	if err != nil {
		t.Fatalf("Failed to migrate: %v\n%s", err, output)
	}

	output, err = run("--backend", "badger", "open", "view_workout_screen/1")
	if err != nil {
		t.Fatalf("Failed to open screen on badger: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Squat 5x5 100kg") {
		t.Errorf("Expected migrated workout, got: %s", output)
	}

	output, err = run("open", "settings_screen")
	if err == nil {
		t.Errorf("Expected unknown route to fail, got: %s", output)
	}
}
