package model

import "time"

// Metadata holds the columns the database fills on insert.
type Metadata struct {
	CreatedAt time.Time `db:"created_at" generated:"true" json:"created_at"`
}
