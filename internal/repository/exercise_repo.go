package repository

import (
	"database/sql"
	"fmt"

	"screenclash/internal/database"
	"screenclash/internal/models"
)

// ExerciseRepository handles database operations for the content library
type ExerciseRepository struct {
	db *database.DB
}

// NewExerciseRepository creates a new exercise repository
func NewExerciseRepository(db *database.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// CreateItem inserts a new library entry
func (r *ExerciseRepository) CreateItem(item *models.LibraryItem) (int64, error) {
	query := `
		INSERT INTO exercise_library (type, destinataire, content)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, string(item.Type), item.Recipient, string(item.Content))
	if err != nil {
		return 0, fmt.Errorf("failed to create library item: %w", err)
	}
	return id, nil
}

// GetItem retrieves a single library entry by ID
func (r *ExerciseRepository) GetItem(id int64) (*models.LibraryItem, error) {
	query := `
		SELECT id, type, destinataire, content, created_at
		FROM exercise_library
		WHERE id = ?
	`
	item := &models.LibraryItem{}
	err := r.db.QueryRow(query, id).Scan(
		&item.ID,
		&item.Type,
		&item.Recipient,
		&item.Content,
		&item.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get library item: %w", err)
	}

	return item, nil
}

// GetItemsForProfile retrieves all entries of a given type addressed to a profile
func (r *ExerciseRepository) GetItemsForProfile(profileName string, exerciseType models.ExerciseType) ([]models.LibraryItem, error) {
	query := `
		SELECT id, type, destinataire, content, created_at
		FROM exercise_library
		WHERE destinataire = ? AND type = ?
		ORDER BY created_at
	`
	return r.queryItems(query, profileName, string(exerciseType))
}

// GetAllItemsForProfile retrieves every entry addressed to a profile
func (r *ExerciseRepository) GetAllItemsForProfile(profileName string) ([]models.LibraryItem, error) {
	query := `
		SELECT id, type, destinataire, content, created_at
		FROM exercise_library
		WHERE destinataire = ?
		ORDER BY type, created_at
	`
	return r.queryItems(query, profileName)
}

// UpdateItem replaces the content of an existing entry
func (r *ExerciseRepository) UpdateItem(item *models.LibraryItem) error {
	query := `
		UPDATE exercise_library
		SET type = ?, destinataire = ?, content = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query, string(item.Type), item.Recipient, string(item.Content), item.ID)
	if err != nil {
		return fmt.Errorf("failed to update library item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("library item %d not found", item.ID)
	}
	return nil
}

// DeleteItem removes a library entry
func (r *ExerciseRepository) DeleteItem(id int64) error {
	query := "DELETE FROM exercise_library WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete library item: %w", err)
	}
	return nil
}

func (r *ExerciseRepository) queryItems(query string, args ...interface{}) ([]models.LibraryItem, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query library items: %w", err)
	}
	defer rows.Close()

	var items []models.LibraryItem
	for rows.Next() {
		var item models.LibraryItem
		if err := rows.Scan(
			&item.ID,
			&item.Type,
			&item.Recipient,
			&item.Content,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan library item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}
