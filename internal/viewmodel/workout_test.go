// ABOUTME: Tests for the new, edit and view workout view-models.
// ABOUTME: Runs against a temp SQLite repository and waits on each view-model's scope.
package viewmodel

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/harperreed/gainsbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkoutStartsToday(t *testing.T) {
	deps, _ := testDeps(t, setupRepo(t))
	vm := NewNewWorkoutViewModel(context.Background(), deps)
	defer vm.Close()

	assert.Equal(t, models.WorkoutDate{Day: 15, Month: 3, Year: 2024}, vm.Date.Value())
	assert.Empty(t, vm.Exercises.Value())
}

func TestExerciseEditing(t *testing.T) {
	deps, _ := testDeps(t, setupRepo(t))
	vm := NewNewWorkoutViewModel(context.Background(), deps)
	defer vm.Close()

	a, err := vm.AddExercise("Squat 5x5")
	require.NoError(t, err)
	b, err := vm.AddExercise("  Bench 3x8  ")
	require.NoError(t, err)
	assert.Equal(t, 1, a.Index)
	assert.Equal(t, 2, b.Index)
	assert.Equal(t, "Bench 3x8", b.Description)

	_, err = vm.AddExercise("   ")
	assert.ErrorIs(t, err, ErrEmptyDescription)

	require.NoError(t, vm.EditExercise(a.Key, "Front squat 5x5"))
	assert.Equal(t, []string{"Front squat 5x5", "Bench 3x8"}, models.Descriptions(vm.Exercises.Value()))

	require.NoError(t, vm.DeleteExercise(a.Key))
	assert.Equal(t, []string{"Bench 3x8"}, models.Descriptions(vm.Exercises.Value()))

	assert.ErrorIs(t, vm.DeleteExercise(uuid.New()), ErrExerciseNotFound)
	assert.ErrorIs(t, vm.EditExercise(uuid.New(), "x"), ErrExerciseNotFound)
	assert.ErrorIs(t, vm.SetDate(models.WorkoutDate{Day: 31, Month: 2, Year: 2024}), ErrInvalidDate)
}

func TestNewWorkoutSave(t *testing.T) {
	repo := setupRepo(t)
	deps, _ := testDeps(t, repo)
	vm := NewNewWorkoutViewModel(context.Background(), deps)
	defer vm.Close()

	descs := []string{gofakeit.Sentence(3), gofakeit.Sentence(4)}
	for _, d := range descs {
		_, err := vm.AddExercise(d)
		require.NoError(t, err)
	}
	require.NoError(t, vm.SetDate(models.WorkoutDate{Day: 2, Month: 1, Year: 2023}))

	vm.Save()
	vm.Wait()
	require.NoError(t, vm.LastError().Value())

	id := vm.SavedID.Value()
	require.NotZero(t, id)

	rows, err := repo.GetWorkoutWithExercises(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, descs, rows[0].Descriptions())
	assert.Equal(t, models.WorkoutDate{Day: 2, Month: 1, Year: 2023}, rows[0].Workout.Date())

	years, err := repo.ListYears(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Year{{Year: 2023}}, years)
}

func TestEditWorkoutReplacesExercises(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	date := models.WorkoutDate{Day: 1, Month: 1, Year: 2024}

	_, err := repo.InsertWorkout(ctx, models.NewWorkout(date).WithID(7))
	require.NoError(t, err)
	for _, d := range []string{"A", "B"} {
		_, err := repo.InsertExercise(ctx, models.NewExercise(7, d, date))
		require.NoError(t, err)
	}

	deps, _ := testDeps(t, repo)
	vm := NewEditWorkoutViewModel(ctx, deps, 7)
	defer vm.Close()
	vm.Wait()

	require.True(t, vm.Loaded.Value())
	assert.False(t, vm.Missing.Value())
	assert.Equal(t, date, vm.Date.Value())

	list := vm.Exercises.Value()
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Index)
	assert.Equal(t, 2, list[1].Index)

	require.NoError(t, vm.EditExercise(list[1].Key, "C"))
	_, err = vm.AddExercise("D")
	require.NoError(t, err)

	require.NoError(t, vm.Save())
	vm.Wait()
	require.NoError(t, vm.LastError().Value())
	assert.True(t, vm.Saved.Value())

	rows, err := repo.GetWorkoutWithExercises(ctx, 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].Workout.ID)
	assert.Equal(t, []string{"A", "C", "D"}, rows[0].Descriptions())

	all, err := repo.ListAllWorkouts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEditWorkoutMissing(t *testing.T) {
	deps, _ := testDeps(t, setupRepo(t))
	vm := NewEditWorkoutViewModel(context.Background(), deps, 99)
	defer vm.Close()
	vm.Wait()

	assert.True(t, vm.Loaded.Value())
	assert.True(t, vm.Missing.Value())
	assert.Empty(t, vm.Exercises.Value())
}

func TestEditWorkoutSaveBeforeLoad(t *testing.T) {
	ctx := context.Background()
	db := setupRepo(t)
	date := models.WorkoutDate{Day: 1, Month: 1, Year: 2024}
	id, err := db.SaveWorkout(ctx, date, []string{"A", "B"})
	require.NoError(t, err)

	repo := newGatedRepo(db)
	deps, _ := testDeps(t, repo)
	vm := NewEditWorkoutViewModel(ctx, deps, id)
	defer vm.Close()

	require.ErrorIs(t, vm.Save(), ErrNotLoaded)
	repo.Release()
	vm.Wait()
	require.NoError(t, vm.LastError().Value())
	assert.False(t, vm.Saved.Value())

	rows, err := db.GetWorkoutWithExercises(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, date, rows[0].Workout.Date())
	assert.Equal(t, []string{"A", "B"}, rows[0].Descriptions())
}

func TestEditWorkoutSaveMissing(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	deps, _ := testDeps(t, repo)
	vm := NewEditWorkoutViewModel(ctx, deps, 99)
	defer vm.Close()
	vm.Wait()

	_, err := vm.AddExercise("Squat 5x5")
	require.NoError(t, err)
	require.ErrorIs(t, vm.Save(), ErrWorkoutMissing)
	vm.Wait()

	all, err := repo.ListAllWorkouts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestViewWorkout(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	id, err := repo.SaveWorkout(ctx, models.WorkoutDate{Day: 9, Month: 3, Year: 2024}, []string{"Row 4x10"})
	require.NoError(t, err)

	deps, _ := testDeps(t, repo)
	vm := NewViewWorkoutViewModel(ctx, deps)
	defer vm.Close()

	vm.Load(id)
	vm.Wait()
	require.NotNil(t, vm.Workout.Value())
	assert.Equal(t, []string{"Row 4x10"}, vm.Workout.Value().Descriptions())

	vm.Load(id + 100)
	vm.Wait()
	assert.Nil(t, vm.Workout.Value())
	assert.True(t, vm.Loaded.Value())
}
