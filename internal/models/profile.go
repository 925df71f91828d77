package models

import "time"

// Profile is a child profile on the tablet. Profiles are identified by
// name in the exercise library and history tables.
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
