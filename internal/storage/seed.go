// ABOUTME: Sample and generated data for trying gainsbook out.
// ABOUTME: SeedSample writes a fixed February 2023 log; SeedRandom generates workouts with gofakeit.

package storage

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/harperreed/gainsbook/internal/models"
)

var sampleExercises = []string{
	"Bench press: 5x5 80 kg 3mr",
	"Pull up: 10, 8, 6 3mr",
	"Squat: 3x5 100 kg 3mr",
}

var sampleDates = []models.WorkoutDate{
	{Day: 10, Month: 2, Year: 2023},
	{Day: 12, Month: 2, Year: 2023},
	{Day: 15, Month: 2, Year: 2023},
}

var sampleYears = []int{2020, 2021, 2022, 2023}

// SeedSample writes three February 2023 workouts and the years 2020 to 2023.
func SeedSample(ctx context.Context, r Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}
	for _, d := range sampleDates {
		if _, err := r.SaveWorkout(ctx, d, sampleExercises); err != nil {
			return nil, fmt.Errorf("seed workout: %w", err)
		}
		summary.Workouts++
		summary.Exercises += len(sampleExercises)
	}
	for _, y := range sampleYears {
		if err := r.InsertYear(ctx, y); err != nil {
			return nil, fmt.Errorf("seed year: %w", err)
		}
		summary.Years++
	}
	return summary, nil
}

var randomLifts = []string{"Bench press", "Squat", "Deadlift", "Overhead press", "Chin up", "Seal row", "Dip", "Lunge"}

// SeedRandom writes n generated workouts dated within year, each with one to
// five exercises, plus one statistic per workout for a random default lift.
func SeedRandom(ctx context.Context, r Repository, faker *gofakeit.Faker, n, year int) (*MigrateSummary, error) {
	vars, err := r.ListVariables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list variables: %w", err)
	}
	if len(vars) == 0 {
		for _, name := range models.DefaultVariableNames {
			id, err := r.InsertVariable(ctx, &models.Variable{Name: name})
			if err != nil {
				return nil, fmt.Errorf("seed variable: %w", err)
			}
			vars = append(vars, models.Variable{ID: id, Name: name})
		}
	}

	summary := &MigrateSummary{Variables: len(vars)}
	for i := 0; i < n; i++ {
		month := faker.Number(1, 12)
		date := models.DateOf(faker.DateRange(
			models.WorkoutDate{Day: 1, Month: month, Year: year}.Time(),
			models.WorkoutDate{Day: 28, Month: month, Year: year}.Time(),
		))

		count := faker.Number(1, 5)
		descriptions := make([]string, 0, count)
		for j := 0; j < count; j++ {
			descriptions = append(descriptions, fmt.Sprintf("%s: %dx%d %d kg",
				faker.RandomString(randomLifts), faker.Number(1, 5), faker.Number(1, 12), faker.Number(4, 40)*5))
		}
		if _, err := r.SaveWorkout(ctx, date, descriptions); err != nil {
			return nil, fmt.Errorf("seed workout: %w", err)
		}
		summary.Workouts++
		summary.Exercises += count

		v := vars[faker.Number(0, len(vars)-1)]
		t := models.AllRepMaxTypes[faker.Number(0, len(models.AllRepMaxTypes)-1)]
		st := models.NewStatistic(v.ID, t, float64(faker.Number(8, 60))*2.5).WithDate(date)
		if _, err := r.InsertStatistic(ctx, st); err != nil {
			return nil, fmt.Errorf("seed statistic: %w", err)
		}
		summary.Statistics++
	}

	if n > 0 {
		if err := r.InsertYear(ctx, year); err != nil {
			return nil, fmt.Errorf("seed year: %w", err)
		}
		summary.Years = 1
	}
	return summary, nil
}
