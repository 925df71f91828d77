package models

import "time"

// Bookmark is a saved page in a profile's browser sidebar. An entry
// with an empty URL acts as a section separator.
type Bookmark struct {
	ID          int64     `json:"id"`
	ProfileName string    `json:"profile_name"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsSection reports whether the bookmark is a separator rather than a link
func (b *Bookmark) IsSection() bool {
	return b.URL == ""
}
