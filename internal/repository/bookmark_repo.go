package repository

import (
	"fmt"

	"screenclash/internal/database"
	"screenclash/internal/models"
)

// BookmarkRepository handles database operations for browser bookmarks
type BookmarkRepository struct {
	db *database.DB
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *database.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// CreateBookmark appends a bookmark to the end of a profile's sidebar
func (r *BookmarkRepository) CreateBookmark(bm *models.Bookmark) (int64, error) {
	var maxPos int
	posQuery := "SELECT COALESCE(MAX(position), 0) FROM bookmarks WHERE profile_name = ?"
	if err := r.db.QueryRow(posQuery, bm.ProfileName).Scan(&maxPos); err != nil {
		return 0, fmt.Errorf("failed to find next bookmark position: %w", err)
	}
	bm.Position = maxPos + 1

	query := `
		INSERT INTO bookmarks (profile_name, title, url, position)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, bm.ProfileName, bm.Title, bm.URL, bm.Position)
	if err != nil {
		return 0, fmt.Errorf("failed to create bookmark: %w", err)
	}
	return id, nil
}

// GetBookmarksForProfile retrieves a profile's sidebar in display order
func (r *BookmarkRepository) GetBookmarksForProfile(profileName string) ([]models.Bookmark, error) {
	query := `
		SELECT id, profile_name, title, url, position, created_at
		FROM bookmarks
		WHERE profile_name = ?
		ORDER BY position
	`
	rows, err := r.db.Query(query, profileName)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []models.Bookmark
	for rows.Next() {
		var bm models.Bookmark
		if err := rows.Scan(&bm.ID, &bm.ProfileName, &bm.Title, &bm.URL, &bm.Position, &bm.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, bm)
	}

	return bookmarks, nil
}

// ReorderBookmarks rewrites the positions of a profile's bookmarks to
// match the given ID order.
func (r *BookmarkRepository) ReorderBookmarks(profileName string, orderedIDs []int64) error {
	query := "UPDATE bookmarks SET position = ? WHERE id = ? AND profile_name = ?"
	for i, id := range orderedIDs {
		if _, err := r.db.Exec(query, i+1, id, profileName); err != nil {
			return fmt.Errorf("failed to reorder bookmarks: %w", err)
		}
	}
	return nil
}

// DeleteBookmark removes a bookmark
func (r *BookmarkRepository) DeleteBookmark(id int64) error {
	query := "DELETE FROM bookmarks WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}
