// ABOUTME: Repository interface for gainsbook data storage.
// ABOUTME: Defines the persistence contract shared by the SQLite and key-value backends.
package storage

import (
	"context"
	"errors"

	"github.com/harperreed/gainsbook/internal/models"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for workouts, statistics and the profile.
// Inserts are insert-or-replace keyed on the primary key; a zero ID asks the store
// to generate one. Deletes of absent keys are not errors.
type Repository interface {
	// Workout operations
	InsertWorkout(ctx context.Context, w *models.Workout) (int64, error)
	InsertExercise(ctx context.Context, e *models.Exercise) (int64, error)
	GetWorkoutWithExercises(ctx context.Context, workoutID int64) ([]models.WorkoutWithExercises, error)
	ListWorkoutsByYearMonth(ctx context.Context, year, month int) ([]models.WorkoutWithExercises, error)
	ListAllWorkouts(ctx context.Context) ([]models.WorkoutWithExercises, error)
	DeleteWorkout(ctx context.Context, workoutID int64) error
	DeleteExercisesByWorkoutID(ctx context.Context, workoutID int64) error

	// Atomic workout sequences
	SaveWorkout(ctx context.Context, date models.WorkoutDate, descriptions []string) (int64, error)
	ReplaceWorkout(ctx context.Context, workoutID int64, date models.WorkoutDate, descriptions []string) error
	RemoveWorkout(ctx context.Context, workoutID int64) error

	// Year operations
	InsertYear(ctx context.Context, year int) error
	ListYears(ctx context.Context) ([]models.Year, error)

	// Variable and statistic operations
	InsertVariable(ctx context.Context, v *models.Variable) (int64, error)
	ListVariables(ctx context.Context) ([]models.Variable, error)
	GetVariableIDByName(ctx context.Context, name string) (int64, error)
	DeleteVariable(ctx context.Context, id int64) error
	InsertStatistic(ctx context.Context, s *models.Statistic) (int64, error)
	ListStatistics(ctx context.Context, variableID int64, t models.RepMaxType, month, year int) ([]models.Statistic, error)
	GetVariableWithStatistics(ctx context.Context, variableID int64) (*models.VariableWithStatistics, error)
	DeleteStatistic(ctx context.Context, id int64) error

	// Legacy lift operations
	InsertLift(ctx context.Context, l *models.Lift) (int64, error)
	ListLifts(ctx context.Context, lift string, t models.RepMaxType, year, month int) ([]models.Lift, error)

	// Profile operations
	SaveProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context) (*models.Profile, error)

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error

	// Lifecycle
	Close() error
}
