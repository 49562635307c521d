// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-badger and badger-to-sqlite round-trip migration.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMigrateDataSQLiteToBadger(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	seedRepo(t, src)
	dst := setupTestKV(t)

	summary, err := MigrateData(ctx, src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}

	if summary.Workouts != 2 {
		t.Errorf("Expected 2 workouts, got %d", summary.Workouts)
	}
	if summary.Exercises != 3 {
		t.Errorf("Expected 3 exercises, got %d", summary.Exercises)
	}
	if summary.Variables != 1 || summary.Statistics != 1 || summary.Years != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if !summary.Profile {
		t.Error("Expected profile to be migrated")
	}

	srcAll, _ := src.ListAllWorkouts(ctx)
	dstAll, err := dst.ListAllWorkouts(ctx)
	if err != nil {
		t.Fatalf("ListAllWorkouts failed: %v", err)
	}
	if len(dstAll) != len(srcAll) {
		t.Fatalf("Workout count mismatch: %d vs %d", len(dstAll), len(srcAll))
	}
	for i := range srcAll {
		if srcAll[i].Workout != dstAll[i].Workout {
			t.Errorf("Workout %d mismatch: %+v vs %+v", i, srcAll[i].Workout, dstAll[i].Workout)
		}
		if len(srcAll[i].Exercises) != len(dstAll[i].Exercises) {
			t.Errorf("Exercise count mismatch for workout %d", srcAll[i].Workout.ID)
		}
	}
}

func TestMigrateDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := setupTestKV(t)
	seedRepo(t, src)
	mid := setupTestDB(t)
	dst := setupTestKV(t)

	if _, err := MigrateData(ctx, src, mid); err != nil {
		t.Fatalf("MigrateData to sqlite failed: %v", err)
	}
	if _, err := MigrateData(ctx, mid, dst); err != nil {
		t.Fatalf("MigrateData to badger failed: %v", err)
	}

	p, err := dst.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Username != "lifter" {
		t.Errorf("Expected username lifter, got %q", p.Username)
	}
	years, _ := dst.ListYears(ctx)
	if len(years) != 1 || years[0].Year != 2024 {
		t.Errorf("Unexpected years after round trip: %+v", years)
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	nonEmpty, err := IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || nonEmpty {
		t.Errorf("Missing dir: got %v, %v", nonEmpty, err)
	}

	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || nonEmpty {
		t.Errorf("Empty dir: got %v, %v", nonEmpty, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || !nonEmpty {
		t.Errorf("Non-empty dir: got %v, %v", nonEmpty, err)
	}
}
