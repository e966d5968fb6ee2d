package models

import "time"

// Category groups transactions under a unique human-readable title.
// Categories are created lazily the first time a transaction references
// an unseen title and are never deleted.
type Category struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
