package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"screenclash/internal/database"
	"screenclash/internal/models"
)

// SettingsRepository handles database operations for profile gate configurations
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetProfileConfig retrieves the gate configuration for a profile.
// Returns nil when the profile has never been configured.
func (r *SettingsRepository) GetProfileConfig(profileName string) (*models.ProfileConfig, error) {
	query := `
		SELECT id, profile_name, number_of_cycles, initial_delay, break_delay, games_config, updated_at
		FROM profile_configs
		WHERE profile_name = ?
	`
	cfg := &models.ProfileConfig{}
	var gamesJSON []byte
	err := r.db.QueryRow(query, profileName).Scan(
		&cfg.ID,
		&cfg.ProfileName,
		&cfg.NumberOfCycles,
		&cfg.InitialDelay,
		&cfg.BreakDelay,
		&gamesJSON,
		&cfg.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile config: %w", err)
	}

	if err := json.Unmarshal(gamesJSON, &cfg.GamesConfig); err != nil {
		return nil, fmt.Errorf("failed to decode games config: %w", err)
	}

	return cfg, nil
}

// SaveProfileConfig inserts or replaces the configuration for a profile
func (r *SettingsRepository) SaveProfileConfig(cfg *models.ProfileConfig) error {
	gamesJSON, err := json.Marshal(cfg.GamesConfig)
	if err != nil {
		return fmt.Errorf("failed to encode games config: %w", err)
	}

	query := r.db.Dialect.UpsertProfileConfig()
	_, err = r.db.Exec(query, cfg.ProfileName, cfg.NumberOfCycles, cfg.InitialDelay, cfg.BreakDelay, string(gamesJSON))
	if err != nil {
		return fmt.Errorf("failed to save profile config: %w", err)
	}
	return nil
}

// DeleteProfileConfig removes a profile's configuration
func (r *SettingsRepository) DeleteProfileConfig(profileName string) error {
	query := "DELETE FROM profile_configs WHERE profile_name = ?"
	_, err := r.db.Exec(query, profileName)
	if err != nil {
		return fmt.Errorf("failed to delete profile config: %w", err)
	}
	return nil
}

// GetAllProfileConfigs retrieves every stored configuration
func (r *SettingsRepository) GetAllProfileConfigs() ([]models.ProfileConfig, error) {
	query := `
		SELECT id, profile_name, number_of_cycles, initial_delay, break_delay, games_config, updated_at
		FROM profile_configs
		ORDER BY profile_name
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile configs: %w", err)
	}
	defer rows.Close()

	var configs []models.ProfileConfig
	for rows.Next() {
		var cfg models.ProfileConfig
		var gamesJSON []byte
		if err := rows.Scan(
			&cfg.ID,
			&cfg.ProfileName,
			&cfg.NumberOfCycles,
			&cfg.InitialDelay,
			&cfg.BreakDelay,
			&gamesJSON,
			&cfg.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile config: %w", err)
		}
		if err := json.Unmarshal(gamesJSON, &cfg.GamesConfig); err != nil {
			return nil, fmt.Errorf("failed to decode games config: %w", err)
		}
		configs = append(configs, cfg)
	}

	return configs, nil
}
