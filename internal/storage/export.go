// ABOUTME: Export and import functionality for gainsbook data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/gainsbook/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for gainsbook data.
type ExportData struct {
	Version    string                        `json:"version" yaml:"version"`
	ExportedAt time.Time                     `json:"exported_at" yaml:"exported_at"`
	Tool       string                        `json:"tool" yaml:"tool"`
	Workouts   []models.WorkoutWithExercises `json:"workouts" yaml:"workouts"`
	Years      []models.Year                 `json:"years" yaml:"years"`
	Variables  []models.Variable             `json:"variables" yaml:"variables"`
	Statistics []models.Statistic            `json:"statistics" yaml:"statistics"`
	Lifts      []models.Lift                 `json:"lifts,omitempty" yaml:"lifts,omitempty"`
	Profile    *models.Profile               `json:"profile,omitempty" yaml:"profile,omitempty"`
}

func newExportData() *ExportData {
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "gainsbook",
	}
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	data := newExportData()
	var err error

	if data.Workouts, err = d.ListAllWorkouts(ctx); err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	if data.Years, err = d.ListYears(ctx); err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}
	if data.Variables, err = d.ListVariables(ctx); err != nil {
		return nil, fmt.Errorf("list variables: %w", err)
	}
	if data.Statistics, err = d.listAllStatistics(ctx); err != nil {
		return nil, fmt.Errorf("list statistics: %w", err)
	}
	if data.Lifts, err = d.listAllLifts(ctx); err != nil {
		return nil, fmt.Errorf("list lifts: %w", err)
	}
	if data.Profile, err = optionalProfile(ctx, d); err != nil {
		return nil, err
	}
	return data, nil
}

// ImportData imports data from an export, keeping the exported IDs.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	return importData(ctx, d, data)
}

// importData writes every row of an export through the Repository's insert-or-replace methods.
func importData(ctx context.Context, r Repository, data *ExportData) error {
	for _, y := range data.Years {
		if err := r.InsertYear(ctx, y.Year); err != nil {
			return fmt.Errorf("import year: %w", err)
		}
	}

	for i := range data.Variables {
		if _, err := r.InsertVariable(ctx, &data.Variables[i]); err != nil {
			return fmt.Errorf("import variable: %w", err)
		}
	}

	for i := range data.Statistics {
		if _, err := r.InsertStatistic(ctx, &data.Statistics[i]); err != nil {
			return fmt.Errorf("import statistic: %w", err)
		}
	}

	for i := range data.Lifts {
		if _, err := r.InsertLift(ctx, &data.Lifts[i]); err != nil {
			return fmt.Errorf("import lift: %w", err)
		}
	}

	for i := range data.Workouts {
		w := &data.Workouts[i]
		id, err := r.InsertWorkout(ctx, &w.Workout)
		if err != nil {
			return fmt.Errorf("import workout: %w", err)
		}
		for j := range w.Exercises {
			w.Exercises[j].WorkoutID = id
			if _, err := r.InsertExercise(ctx, &w.Exercises[j]); err != nil {
				return fmt.Errorf("import exercise: %w", err)
			}
		}
	}

	if data.Profile != nil {
		if err := r.SaveProfile(ctx, data.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}

	return nil
}

func optionalProfile(ctx context.Context, r Repository) (*models.Profile, error) {
	p, err := r.GetProfile(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(ctx context.Context, r Repository) ([]byte, error) {
	data, err := r.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML, with workouts flattened to dated
// exercise lists and statistics grouped by variable name.
func ExportYAML(ctx context.Context, r Repository) ([]byte, error) {
	data, err := r.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                     `yaml:"version"`
		ExportedAt string                     `yaml:"exported_at"`
		Tool       string                     `yaml:"tool"`
		Years      []int                      `yaml:"years"`
		Workouts   []yamlWorkout              `yaml:"workouts"`
		Statistics map[string][]yamlStatistic `yaml:"statistics"`
		Profile    *models.Profile            `yaml:"profile,omitempty"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Years:      make([]int, 0, len(data.Years)),
		Workouts:   make([]yamlWorkout, 0, len(data.Workouts)),
		Statistics: make(map[string][]yamlStatistic),
		Profile:    data.Profile,
	}

	for _, y := range data.Years {
		yamlData.Years = append(yamlData.Years, y.Year)
	}

	for _, w := range data.Workouts {
		yamlData.Workouts = append(yamlData.Workouts, yamlWorkout{
			ID:        w.Workout.ID,
			Date:      w.Workout.Date().String(),
			Exercises: w.Descriptions(),
		})
	}

	names := make(map[int64]string, len(data.Variables))
	for _, v := range data.Variables {
		names[v.ID] = v.Name
	}
	for _, s := range data.Statistics {
		name, ok := names[s.VariableID]
		if !ok {
			name = fmt.Sprintf("variable-%d", s.VariableID)
		}
		yamlData.Statistics[name] = append(yamlData.Statistics[name], yamlStatistic{
			Type:  string(s.Type),
			Value: s.Value,
			Date:  s.Date().String(),
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlWorkout struct {
	ID        int64    `yaml:"id"`
	Date      string   `yaml:"date"`
	Exercises []string `yaml:"exercises"`
}

type yamlStatistic struct {
	Type  string  `yaml:"type"`
	Value float64 `yaml:"value"`
	Date  string  `yaml:"date"`
}

// ExportMarkdown renders the workout log as Markdown, newest month first.
func ExportMarkdown(ctx context.Context, r Repository) (string, error) {
	workouts, err := r.ListAllWorkouts(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Training Log - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(workouts) == 0 {
		sb.WriteString("No workouts logged.\n")
		return sb.String(), nil
	}

	// Group by year-month
	grouped := make(map[string][]models.WorkoutWithExercises)
	for _, w := range workouts {
		key := fmt.Sprintf("%04d-%02d", w.Workout.Year, w.Workout.Month)
		grouped[key] = append(grouped[key], w)
	}

	months := make([]string, 0, len(grouped))
	for k := range grouped {
		months = append(months, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	for _, m := range months {
		sb.WriteString(fmt.Sprintf("## %s\n\n", m))
		for _, w := range grouped[m] {
			sb.WriteString(fmt.Sprintf("### %s (#%d)\n\n", w.Workout.Date(), w.Workout.ID))
			for _, e := range w.Exercises {
				sb.WriteString(fmt.Sprintf("- %s\n", e.Description))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(ctx context.Context, r Repository, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return r.ImportData(ctx, &exportData)
}
