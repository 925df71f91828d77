package repository

import (
	"database/sql"
	"fmt"

	"screenclash/internal/database"
	"screenclash/internal/models"
)

// NoteRepository handles database operations for notebook blocks
type NoteRepository struct {
	db *database.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *database.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// CreateBlock inserts a new note block at the end of the profile's notebook
func (r *NoteRepository) CreateBlock(block *models.NoteBlock) (int64, error) {
	var maxIndex sql.NullInt64
	indexQuery := "SELECT MAX(order_index) FROM note_blocks WHERE profile_name = ?"
	if err := r.db.QueryRow(indexQuery, block.ProfileName).Scan(&maxIndex); err != nil {
		return 0, fmt.Errorf("failed to find next block index: %w", err)
	}
	block.OrderIndex = int(maxIndex.Int64) + 1

	query := `
		INSERT INTO note_blocks (profile_name, content, order_index, is_pinned, is_favorite, category)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		block.ProfileName, block.Content, block.OrderIndex,
		block.IsPinned, block.IsFavorite, block.Category)
	if err != nil {
		return 0, fmt.Errorf("failed to create note block: %w", err)
	}
	return id, nil
}

// GetBlocksForProfile retrieves a profile's notebook, pinned blocks first
func (r *NoteRepository) GetBlocksForProfile(profileName string) ([]models.NoteBlock, error) {
	query := `
		SELECT id, profile_name, content, order_index, is_pinned, is_favorite, COALESCE(category, ''), updated_at
		FROM note_blocks
		WHERE profile_name = ?
		ORDER BY is_pinned DESC, order_index
	`
	rows, err := r.db.Query(query, profileName)
	if err != nil {
		return nil, fmt.Errorf("failed to query note blocks: %w", err)
	}
	defer rows.Close()

	var blocks []models.NoteBlock
	for rows.Next() {
		var block models.NoteBlock
		if err := rows.Scan(
			&block.ID,
			&block.ProfileName,
			&block.Content,
			&block.OrderIndex,
			&block.IsPinned,
			&block.IsFavorite,
			&block.Category,
			&block.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan note block: %w", err)
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}

// UpdateBlock replaces a block's content and flags
func (r *NoteRepository) UpdateBlock(block *models.NoteBlock) error {
	query := `
		UPDATE note_blocks
		SET content = ?, order_index = ?, is_pinned = ?, is_favorite = ?, category = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		block.Content, block.OrderIndex, block.IsPinned, block.IsFavorite, block.Category, block.ID)
	if err != nil {
		return fmt.Errorf("failed to update note block: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("note block %d not found", block.ID)
	}
	return nil
}

// DeleteBlock removes a note block
func (r *NoteRepository) DeleteBlock(id int64) error {
	query := "DELETE FROM note_blocks WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete note block: %w", err)
	}
	return nil
}

// GetCategoriesForProfile retrieves a profile's note categories
func (r *NoteRepository) GetCategoriesForProfile(profileName string) ([]models.NoteCategory, error) {
	query := `
		SELECT id, profile_name, name
		FROM note_categories
		WHERE profile_name = ?
		ORDER BY name
	`
	rows, err := r.db.Query(query, profileName)
	if err != nil {
		return nil, fmt.Errorf("failed to query note categories: %w", err)
	}
	defer rows.Close()

	var categories []models.NoteCategory
	for rows.Next() {
		var cat models.NoteCategory
		if err := rows.Scan(&cat.ID, &cat.ProfileName, &cat.Name); err != nil {
			return nil, fmt.Errorf("failed to scan note category: %w", err)
		}
		categories = append(categories, cat)
	}

	return categories, nil
}

// CreateCategory inserts a new note category
func (r *NoteRepository) CreateCategory(profileName, name string) (int64, error) {
	query := `
		INSERT INTO note_categories (profile_name, name)
		VALUES (?, ?)
	`
	id, err := r.db.ExecReturningID(query, profileName, name)
	if err != nil {
		return 0, fmt.Errorf("failed to create note category: %w", err)
	}
	return id, nil
}

// DeleteCategory removes a category and clears it from its blocks
func (r *NoteRepository) DeleteCategory(id int64) error {
	var profileName, name string
	lookup := "SELECT profile_name, name FROM note_categories WHERE id = ?"
	err := r.db.QueryRow(lookup, id).Scan(&profileName, &name)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up note category: %w", err)
	}

	clear := "UPDATE note_blocks SET category = '' WHERE profile_name = ? AND category = ?"
	if _, err := r.db.Exec(clear, profileName, name); err != nil {
		return fmt.Errorf("failed to clear category from blocks: %w", err)
	}

	if _, err := r.db.Exec("DELETE FROM note_categories WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete note category: %w", err)
	}
	return nil
}
