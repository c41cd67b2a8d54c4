package models

import "time"

// Category represents a user-defined grouping of phrases. Phrases hold only
// the category ID; deleting a category never cascades to its phrases.
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Tag represents a free-form label shared across phrases
type Tag struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
