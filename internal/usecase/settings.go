package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
	"github.com/Rut304/polybot-sub000/pkg/logger"
)

// SettingsService loads and saves the bot configuration blob.
type SettingsService struct {
	store    repository.SettingsStore
	validate *validator.Validate
	log      *logger.Logger
}

// NewSettingsService creates a settings service.
func NewSettingsService(store repository.SettingsStore, log *logger.Logger) *SettingsService {
	return &SettingsService{
		store:    store,
		validate: validator.New(),
		log:      log,
	}
}

// Load returns the stored settings, or the defaults when nothing was ever
// saved. The dashboard always has a complete settings document to render.
func (s *SettingsService) Load(ctx context.Context) (*models.BotSettings, error) {
	settings, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return DefaultSettings()
		}
		return nil, err
	}
	return settings, nil
}

// Save validates and persists the settings blob.
func (s *SettingsService) Save(ctx context.Context, settings *models.BotSettings) error {
	if err := s.validate.StructCtx(ctx, settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := s.store.Save(ctx, settings); err != nil {
		return err
	}
	s.log.Info("settings saved",
		logger.String("mode", settings.Mode),
		logger.Bool("tradingEnabled", settings.TradingEnabled))
	return nil
}

// DefaultSettings builds a settings document from struct tag defaults.
func DefaultSettings() (*models.BotSettings, error) {
	settings := &models.BotSettings{}
	if err := defaults.Set(settings); err != nil {
		return nil, fmt.Errorf("apply setting defaults: %w", err)
	}
	return settings, nil
}
