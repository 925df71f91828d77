package models

import "time"

// NoteBlock is one block of a profile's notebook. Blocks are ordered by
// OrderIndex within a profile.
type NoteBlock struct {
	ID          int64     `json:"id"`
	ProfileName string    `json:"profile_name"`
	Content     string    `json:"content"`
	OrderIndex  int       `json:"order_index"`
	IsPinned    bool      `json:"is_pinned"`
	IsFavorite  bool      `json:"is_favorite"`
	Category    string    `json:"category,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NoteCategory groups note blocks under a named heading
type NoteCategory struct {
	ID          int64  `json:"id"`
	ProfileName string `json:"profile_name"`
	Name        string `json:"name"`
}
