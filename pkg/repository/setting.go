package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsreel/pkg/domain"
)

// displayKey is the settings key holding display settings json
const displayKey = "display"

// SettingRepository handles setting-related database operations
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value, empty if not set
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a setting value
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, key, value)
		return err
	})
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// GetDisplaySettings returns stored display settings, with unset fields taken from defaults
func (r *SettingRepository) GetDisplaySettings(ctx context.Context, defaults domain.DisplaySettings) (domain.DisplaySettings, error) {
	value, err := r.GetSetting(ctx, displayKey)
	if err != nil {
		return defaults, err
	}
	if value == "" {
		return defaults, nil
	}

	var ds domain.DisplaySettings
	if err := json.Unmarshal([]byte(value), &ds); err != nil {
		return defaults, fmt.Errorf("unmarshal display settings: %w", err)
	}
	return ds.WithDefaults(defaults), nil
}

// SaveDisplaySettings stores display settings
func (r *SettingRepository) SaveDisplaySettings(ctx context.Context, ds domain.DisplaySettings) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshal display settings: %w", err)
	}
	return r.SetSetting(ctx, displayKey, string(data))
}
