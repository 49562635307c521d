// ABOUTME: Year, variable, statistic and lift operations for the SQLite backend.
// ABOUTME: Statistics are filtered by variable, rep-max type, month and year.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/gainsbook/internal/models"
)

// InsertYear records a year. Inserting an existing year is a no-op.
func (d *DB) InsertYear(ctx context.Context, year int) error {
	if _, err := d.db.ExecContext(ctx, `INSERT OR REPLACE INTO years (year) VALUES (?)`, year); err != nil {
		return fmt.Errorf("insert year: %w", err)
	}
	return nil
}

// ListYears returns all recorded years in ascending order.
func (d *DB) ListYears(ctx context.Context) ([]models.Year, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT year FROM years ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("query years: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var years []models.Year
	for rows.Next() {
		var y models.Year
		if err := rows.Scan(&y.Year); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// InsertVariable inserts or replaces a variable and returns its ID.
func (d *DB) InsertVariable(ctx context.Context, v *models.Variable) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO variables (id, name) VALUES (?, ?)`,
		nullableID(v.ID), v.Name)
	if err != nil {
		return 0, fmt.Errorf("insert variable: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get variable id: %w", err)
	}
	v.ID = id
	return id, nil
}

// ListVariables returns all variables in insertion order.
func (d *DB) ListVariables(ctx context.Context) ([]models.Variable, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, name FROM variables ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query variables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var vars []models.Variable
	for rows.Next() {
		var v models.Variable
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, fmt.Errorf("scan variable: %w", err)
		}
		vars = append(vars, v)
	}
	return vars, rows.Err()
}

// GetVariableIDByName returns the lowest ID among variables with the given name.
func (d *DB) GetVariableIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := d.db.QueryRowContext(ctx,
		`SELECT id FROM variables WHERE name = ? ORDER BY id LIMIT 1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("variable %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get variable id: %w", err)
	}
	return id, nil
}

// DeleteVariable deletes a variable and its statistics.
func (d *DB) DeleteVariable(ctx context.Context, id int64) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM statistics WHERE variable_id = ?`, id); err != nil {
			return fmt.Errorf("delete statistics: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM variables WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete variable: %w", err)
		}
		return nil
	})
}

// InsertStatistic inserts or replaces a statistic and returns its ID.
func (d *DB) InsertStatistic(ctx context.Context, s *models.Statistic) (int64, error) {
	res, err := d.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO statistics (id, variable_id, type, value, day, month, year)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nullableID(s.ID), s.VariableID, string(s.Type), s.Value, s.Day, s.Month, s.Year)
	if err != nil {
		return 0, fmt.Errorf("insert statistic: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get statistic id: %w", err)
	}
	s.ID = id
	return id, nil
}

// ListStatistics returns the statistics matching all four filters, ordered by day.
func (d *DB) ListStatistics(ctx context.Context, variableID int64, t models.RepMaxType, month, year int) ([]models.Statistic, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, variable_id, type, value, day, month, year FROM statistics
		WHERE variable_id = ? AND type = ? AND month = ? AND year = ?
		ORDER BY day, id`, variableID, string(t), month, year)
	if err != nil {
		return nil, fmt.Errorf("query statistics: %w", err)
	}
	return scanStatistics(rows)
}

// GetVariableWithStatistics returns a variable joined with all of its statistics.
func (d *DB) GetVariableWithStatistics(ctx context.Context, variableID int64) (*models.VariableWithStatistics, error) {
	var v models.Variable
	err := d.db.QueryRowContext(ctx,
		`SELECT id, name FROM variables WHERE id = ?`, variableID).Scan(&v.ID, &v.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("variable %d: %w", variableID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get variable: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, variable_id, type, value, day, month, year FROM statistics
		WHERE variable_id = ? ORDER BY year, month, day, id`, variableID)
	if err != nil {
		return nil, fmt.Errorf("query statistics: %w", err)
	}
	stats, err := scanStatistics(rows)
	if err != nil {
		return nil, err
	}
	return &models.VariableWithStatistics{Variable: v, Statistics: stats}, nil
}

// DeleteStatistic deletes a statistic by ID.
func (d *DB) DeleteStatistic(ctx context.Context, id int64) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM statistics WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete statistic: %w", err)
	}
	return nil
}

// InsertLift inserts or replaces a legacy lift row.
func (d *DB) InsertLift(ctx context.Context, l *models.Lift) (int64, error) {
	res, err := d.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO lifts (id, lift, type, value, day, month, year)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nullableID(l.ID), l.Lift, string(l.Type), l.Value, l.Day, l.Month, l.Year)
	if err != nil {
		return 0, fmt.Errorf("insert lift: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get lift id: %w", err)
	}
	l.ID = id
	return id, nil
}

// ListLifts returns legacy lift rows matching all four filters.
func (d *DB) ListLifts(ctx context.Context, lift string, t models.RepMaxType, year, month int) ([]models.Lift, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, lift, type, value, day, month, year FROM lifts
		WHERE lift = ? AND type = ? AND year = ? AND month = ?
		ORDER BY day, id`, lift, string(t), year, month)
	if err != nil {
		return nil, fmt.Errorf("query lifts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lifts []models.Lift
	for rows.Next() {
		var l models.Lift
		var typ string
		if err := rows.Scan(&l.ID, &l.Lift, &typ, &l.Value, &l.Day, &l.Month, &l.Year); err != nil {
			return nil, fmt.Errorf("scan lift: %w", err)
		}
		l.Type = models.RepMaxType(typ)
		lifts = append(lifts, l)
	}
	return lifts, rows.Err()
}

func (d *DB) listAllStatistics(ctx context.Context) ([]models.Statistic, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, variable_id, type, value, day, month, year FROM statistics ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query statistics: %w", err)
	}
	return scanStatistics(rows)
}

func (d *DB) listAllLifts(ctx context.Context) ([]models.Lift, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, lift, type, value, day, month, year FROM lifts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query lifts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lifts []models.Lift
	for rows.Next() {
		var l models.Lift
		var typ string
		if err := rows.Scan(&l.ID, &l.Lift, &typ, &l.Value, &l.Day, &l.Month, &l.Year); err != nil {
			return nil, fmt.Errorf("scan lift: %w", err)
		}
		l.Type = models.RepMaxType(typ)
		lifts = append(lifts, l)
	}
	return lifts, rows.Err()
}

func scanStatistics(rows *sql.Rows) ([]models.Statistic, error) {
	defer func() { _ = rows.Close() }()

	var stats []models.Statistic
	for rows.Next() {
		var s models.Statistic
		var typ string
		if err := rows.Scan(&s.ID, &s.VariableID, &typ, &s.Value, &s.Day, &s.Month, &s.Year); err != nil {
			return nil, fmt.Errorf("scan statistic: %w", err)
		}
		s.Type = models.RepMaxType(typ)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
