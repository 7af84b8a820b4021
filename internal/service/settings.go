package service

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/tally/internal/models"
)

type languageInput struct {
	Language string `validate:"oneof=en ar fr"`
}

type themeInput struct {
	Theme string `validate:"oneof=light dark system"`
}

// Settings returns the stored settings or the defaults.
func (s *Service) Settings(ctx context.Context) (models.AppSettings, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return models.AppSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// SetLanguage changes the interface language.
func (s *Service) SetLanguage(ctx context.Context, language string) (models.AppSettings, error) {
	if err := s.check(languageInput{Language: language}); err != nil {
		return models.AppSettings{}, err
	}
	return s.updateSettings(ctx, func(settings *models.AppSettings) { settings.Language = language })
}

// SetTheme changes the display theme.
func (s *Service) SetTheme(ctx context.Context, theme string) (models.AppSettings, error) {
	if err := s.check(themeInput{Theme: theme}); err != nil {
		return models.AppSettings{}, err
	}
	return s.updateSettings(ctx, func(settings *models.AppSettings) { settings.Theme = theme })
}

func (s *Service) updateSettings(ctx context.Context, change func(*models.AppSettings)) (models.AppSettings, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return models.AppSettings{}, err
	}

	change(&settings)

	if err = s.store.UpdateSettings(ctx, settings); err != nil {
		return models.AppSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
