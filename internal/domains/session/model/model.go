package model

import (
	"time"

	"studiodesk/shared/model"
)

const (
	TableName  = "sessions.sessions"
	EntityName = "session"

	FieldID        = "session_id"
	FieldUsername  = "username"
	FieldExpiresAt = "expires_at"
)

// Session is the server-side half of a login. The cookie only carries a
// signed pointer to SessionID.
type Session struct {
	SessionID string    `db:"session_id"`
	Username  string    `db:"username"`
	ExpiresAt time.Time `db:"expires_at"`
	model.Metadata
}
