package sqlite

import (
	"context"
)

// GetSetting retrieves a setting by key
func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (*Setting, error) {
	query := `SELECT key, value FROM settings WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanSetting, "setting", key, key)
}

// SetSetting creates or replaces a setting
func (r *SQLiteRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO settings (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	_, err := r.db.ExecContext(ctx, query, key, value)
	if err != nil {
		return HandleDatabaseError("set setting", err)
	}
	return nil
}

// ListSettings retrieves all settings ordered by key
func (r *SQLiteRepository) ListSettings(ctx context.Context) ([]*Setting, error) {
	query := `SELECT key, value FROM settings ORDER BY key ASC`
	return QueryMultiple(ctx, r.db, query, ScanSettings, "settings")
}

// DeleteSetting deletes a setting by key
func (r *SQLiteRepository) DeleteSetting(ctx context.Context, key string) error {
	query := `DELETE FROM settings WHERE key = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "setting", key, key)
}
