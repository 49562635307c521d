// ABOUTME: Data migration between gainsbook storage backends.
// ABOUTME: Copies workouts, exercises, years, variables, statistics, lifts and profile from source to destination.

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Workouts   int
	Exercises  int
	Years      int
	Variables  int
	Statistics int
	Lifts      int
	Profile    bool
}

// MigrateData copies all data from src to dst storage, preserving IDs.
// The destination should be empty before calling this function.
func MigrateData(ctx context.Context, src, dst Repository) (*MigrateSummary, error) {
	data, err := src.GetAllData(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source data: %w", err)
	}

	if err := dst.ImportData(ctx, data); err != nil {
		return nil, fmt.Errorf("write destination data: %w", err)
	}

	return Summarize(data), nil
}

// Summarize counts the entities in an export.
func Summarize(data *ExportData) *MigrateSummary {
	summary := &MigrateSummary{
		Workouts:   len(data.Workouts),
		Years:      len(data.Years),
		Variables:  len(data.Variables),
		Statistics: len(data.Statistics),
		Lifts:      len(data.Lifts),
		Profile:    data.Profile != nil,
	}
	for _, w := range data.Workouts {
		summary.Exercises += len(w.Exercises)
	}
	return summary
}

// Empty reports whether the summary counts nothing.
func (s *MigrateSummary) Empty() bool {
	return s.Workouts == 0 && s.Exercises == 0 && s.Years == 0 && s.Variables == 0 &&
		s.Statistics == 0 && s.Lifts == 0 && !s.Profile
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
