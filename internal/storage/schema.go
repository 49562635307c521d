// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Flat tables for workouts, exercises, years, variables, statistics, lifts and profile.
package storage

// initSchema creates or updates the database schema.
// Joins are by column value; no foreign keys are declared.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL,
		description TEXT NOT NULL,
		day INTEGER NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS years (
		year INTEGER PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS variables (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS statistics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		variable_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		value REAL NOT NULL,
		day INTEGER NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS lifts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		lift TEXT NOT NULL,
		type TEXT NOT NULL,
		value REAL NOT NULL,
		day INTEGER NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profile (
		user_id INTEGER PRIMARY KEY,
		username TEXT NOT NULL,
		picture_uri TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_year_month ON workouts(year, month);
	CREATE INDEX IF NOT EXISTS idx_exercises_workout ON exercises(workout_id);
	CREATE INDEX IF NOT EXISTS idx_statistics_selection ON statistics(variable_id, type, year, month);
	CREATE INDEX IF NOT EXISTS idx_variables_name ON variables(name);
	`

	_, err := d.db.Exec(schema)
	return err
}
