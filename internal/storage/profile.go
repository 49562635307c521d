// ABOUTME: Profile persistence for the SQLite backend.
// ABOUTME: A single row keyed by user ID holds the local user's details.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/gainsbook/internal/models"
)

// SaveProfile inserts or replaces the profile row.
func (d *DB) SaveProfile(ctx context.Context, p *models.Profile) error {
	if p.UserID == 0 {
		p.UserID = models.DefaultUserID
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO profile (user_id, username, picture_uri, description)
		VALUES (?, ?, ?, ?)`,
		p.UserID, p.Username, p.PictureURI, p.Description)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// GetProfile returns the default user's profile.
func (d *DB) GetProfile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	err := d.db.QueryRowContext(ctx, `
		SELECT user_id, username, picture_uri, description
		FROM profile WHERE user_id = ?`, models.DefaultUserID).
		Scan(&p.UserID, &p.Username, &p.PictureURI, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}
