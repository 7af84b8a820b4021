package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/jackc/pgx/v5"
)

// GetSettings returns the saved settings, or the defaults when none were saved.
func (r *Repository) GetSettings(ctx context.Context) (models.AppSettings, error) {
	settings := models.DefaultSettings()

	err := r.db.QueryRow(ctx, GetSettingsSQL).Scan(&settings.Language, &settings.Theme)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DefaultSettings(), nil
		}
		return models.AppSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return settings, nil
}

// UpdateSettings saves the settings document.
func (r *Repository) UpdateSettings(ctx context.Context, settings models.AppSettings) error {
	if _, err := r.db.Exec(ctx, UpsertSettingsSQL, settings.Language, settings.Theme); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
