package service

import (
	"fmt"

	"screenclash/internal/models"
	"screenclash/internal/repository"
	"screenclash/internal/validation"
)

// ConfigService handles profile gate configuration business logic
type ConfigService struct {
	settingsRepo *repository.SettingsRepository
}

// NewConfigService creates a new config service
func NewConfigService(settingsRepo *repository.SettingsRepository) *ConfigService {
	return &ConfigService{settingsRepo: settingsRepo}
}

// GetConfig returns a profile's gate configuration, falling back to the
// defaults when the profile has never been configured. The defaults are
// not persisted; a profile stays unconfigured until a parent saves.
func (s *ConfigService) GetConfig(profileName string) (*models.ProfileConfig, error) {
	if err := validation.ValidateProfileName(profileName); err != nil {
		return nil, err
	}

	cfg, err := s.settingsRepo.GetProfileConfig(profileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg == nil {
		return models.DefaultProfileConfig(profileName), nil
	}
	return cfg, nil
}

// SaveConfig validates and persists a profile's gate configuration.
// Saving is an upsert: the same payload saved twice leaves the same
// stored state.
func (s *ConfigService) SaveConfig(cfg *models.ProfileConfig) error {
	if err := validation.ValidateProfileConfig(cfg); err != nil {
		return err
	}

	// An empty slot list would make the gate unusable once locked;
	// store the defaults instead so a fresh save always yields a
	// workable cycle.
	if len(cfg.GamesConfig) == 0 {
		cfg.GamesConfig = models.DefaultGameSlots()
	}

	if err := s.settingsRepo.SaveProfileConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// DeleteConfig removes a profile's stored configuration, reverting the
// profile to the defaults.
func (s *ConfigService) DeleteConfig(profileName string) error {
	if err := validation.ValidateProfileName(profileName); err != nil {
		return err
	}
	return s.settingsRepo.DeleteProfileConfig(profileName)
}

// ListConfigs returns every stored configuration
func (s *ConfigService) ListConfigs() ([]models.ProfileConfig, error) {
	return s.settingsRepo.GetAllProfileConfigs()
}
