// ABOUTME: Workout and exercise CRUD operations for the SQLite backend.
// ABOUTME: Save, replace and remove of a workout with its exercises run in one transaction.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/gainsbook/internal/models"
)

// InsertWorkout inserts or replaces a workout and returns its ID.
func (d *DB) InsertWorkout(ctx context.Context, w *models.Workout) (int64, error) {
	return insertWorkout(ctx, d.db, w)
}

// InsertExercise inserts or replaces an exercise and returns its ID.
func (d *DB) InsertExercise(ctx context.Context, e *models.Exercise) (int64, error) {
	return insertExercise(ctx, d.db, e)
}

// GetWorkoutWithExercises returns the workout joined with its exercises.
// The result has zero or one element.
func (d *DB) GetWorkoutWithExercises(ctx context.Context, workoutID int64) ([]models.WorkoutWithExercises, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, day, month, year FROM workouts WHERE id = ?`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("query workout: %w", err)
	}
	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	return d.attachExercises(ctx, workouts)
}

// ListWorkoutsByYearMonth returns the workouts dated in the given month, oldest first.
func (d *DB) ListWorkoutsByYearMonth(ctx context.Context, year, month int) ([]models.WorkoutWithExercises, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, day, month, year FROM workouts
		WHERE year = ? AND month = ?
		ORDER BY day, id`, year, month)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	return d.attachExercises(ctx, workouts)
}

// ListAllWorkouts returns every workout with its exercises.
func (d *DB) ListAllWorkouts(ctx context.Context) ([]models.WorkoutWithExercises, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, day, month, year FROM workouts ORDER BY year, month, day, id`)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	return d.attachExercises(ctx, workouts)
}

// DeleteWorkout deletes the workout row only.
func (d *DB) DeleteWorkout(ctx context.Context, workoutID int64) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, workoutID); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// DeleteExercisesByWorkoutID deletes all exercises of a workout.
func (d *DB) DeleteExercisesByWorkoutID(ctx context.Context, workoutID int64) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM exercises WHERE workout_id = ?`, workoutID); err != nil {
		return fmt.Errorf("delete exercises: %w", err)
	}
	return nil
}

// SaveWorkout inserts a new workout and its exercises in submission order.
func (d *DB) SaveWorkout(ctx context.Context, date models.WorkoutDate, descriptions []string) (int64, error) {
	var id int64
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = insertWorkout(ctx, tx, models.NewWorkout(date))
		if err != nil {
			return err
		}
		return insertDescriptions(ctx, tx, id, date, descriptions)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ReplaceWorkout rewrites a workout under the same ID with new exercises.
func (d *DB) ReplaceWorkout(ctx context.Context, workoutID int64, date models.WorkoutDate, descriptions []string) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if err := deleteWorkoutTree(ctx, tx, workoutID); err != nil {
			return err
		}
		if _, err := insertWorkout(ctx, tx, models.NewWorkout(date).WithID(workoutID)); err != nil {
			return err
		}
		return insertDescriptions(ctx, tx, workoutID, date, descriptions)
	})
}

// RemoveWorkout deletes a workout and its exercises.
func (d *DB) RemoveWorkout(ctx context.Context, workoutID int64) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		return deleteWorkoutTree(ctx, tx, workoutID)
	})
}

func insertWorkout(ctx context.Context, q execer, w *models.Workout) (int64, error) {
	res, err := q.ExecContext(ctx, `
		INSERT OR REPLACE INTO workouts (id, day, month, year)
		VALUES (?, ?, ?, ?)`,
		nullableID(w.ID), w.Day, w.Month, w.Year)
	if err != nil {
		return 0, fmt.Errorf("insert workout: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get workout id: %w", err)
	}
	w.ID = id
	return id, nil
}

func insertExercise(ctx context.Context, q execer, e *models.Exercise) (int64, error) {
	res, err := q.ExecContext(ctx, `
		INSERT OR REPLACE INTO exercises (id, workout_id, description, day, month, year)
		VALUES (?, ?, ?, ?, ?, ?)`,
		nullableID(e.ID), e.WorkoutID, e.Description, e.Day, e.Month, e.Year)
	if err != nil {
		return 0, fmt.Errorf("insert exercise: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get exercise id: %w", err)
	}
	e.ID = id
	return id, nil
}

func insertDescriptions(ctx context.Context, q execer, workoutID int64, date models.WorkoutDate, descriptions []string) error {
	for _, desc := range descriptions {
		if _, err := insertExercise(ctx, q, models.NewExercise(workoutID, desc, date)); err != nil {
			return err
		}
	}
	return nil
}

func deleteWorkoutTree(ctx context.Context, q execer, workoutID int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM exercises WHERE workout_id = ?`, workoutID); err != nil {
		return fmt.Errorf("delete exercises: %w", err)
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, workoutID); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

func (d *DB) attachExercises(ctx context.Context, workouts []models.Workout) ([]models.WorkoutWithExercises, error) {
	out := make([]models.WorkoutWithExercises, 0, len(workouts))
	for _, w := range workouts {
		exercises, err := d.listExercises(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.WorkoutWithExercises{Workout: w, Exercises: exercises})
	}
	return out, nil
}

func (d *DB) listExercises(ctx context.Context, workoutID int64) ([]models.Exercise, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, workout_id, description, day, month, year
		FROM exercises WHERE workout_id = ? ORDER BY id`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() { _ = rows.Close() }()

	exercises := []models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Description, &e.Day, &e.Month, &e.Year); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func scanWorkouts(rows *sql.Rows) ([]models.Workout, error) {
	defer func() { _ = rows.Close() }()

	var workouts []models.Workout
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.Day, &w.Month, &w.Year); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}
