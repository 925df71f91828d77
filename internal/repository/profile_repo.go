package repository

import (
	"database/sql"
	"fmt"

	"screenclash/internal/database"
	"screenclash/internal/models"
)

// ProfileRepository handles database operations for child profiles
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateProfile inserts a new child profile
func (r *ProfileRepository) CreateProfile(name string) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (name)
		VALUES (?)
	`
	id, err := r.db.ExecReturningID(query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return r.GetProfileByID(id)
}

// GetProfileByID retrieves a profile by ID
func (r *ProfileRepository) GetProfileByID(id int64) (*models.Profile, error) {
	query := `
		SELECT id, name, created_at
		FROM profiles
		WHERE id = ?
	`
	profile := &models.Profile{}
	err := r.db.QueryRow(query, id).Scan(&profile.ID, &profile.Name, &profile.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// GetProfileByName retrieves a profile by name
func (r *ProfileRepository) GetProfileByName(name string) (*models.Profile, error) {
	query := `
		SELECT id, name, created_at
		FROM profiles
		WHERE name = ?
	`
	profile := &models.Profile{}
	err := r.db.QueryRow(query, name).Scan(&profile.ID, &profile.Name, &profile.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// GetAllProfiles retrieves every child profile, in creation order
func (r *ProfileRepository) GetAllProfiles() ([]models.Profile, error) {
	query := `
		SELECT id, name, created_at
		FROM profiles
		ORDER BY created_at
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var profile models.Profile
		if err := rows.Scan(&profile.ID, &profile.Name, &profile.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// DeleteProfile removes a profile and its associated data
func (r *ProfileRepository) DeleteProfile(name string) error {
	// Scoped tables key on profile name rather than id
	for _, query := range []string{
		"DELETE FROM exercise_library WHERE destinataire = ?",
		"DELETE FROM exercise_history WHERE child_name = ?",
		"DELETE FROM profile_configs WHERE profile_name = ?",
		"DELETE FROM note_blocks WHERE profile_name = ?",
		"DELETE FROM note_categories WHERE profile_name = ?",
		"DELETE FROM bookmarks WHERE profile_name = ?",
		"DELETE FROM profiles WHERE name = ?",
	} {
		if _, err := r.db.Exec(query, name); err != nil {
			return fmt.Errorf("failed to delete profile data: %w", err)
		}
	}
	return nil
}
