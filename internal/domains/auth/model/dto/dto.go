package dto

import (
	"time"

	"studiodesk/shared/constant"
	"studiodesk/shared/timezone"
)

// LoginRequest carries only a password: the account name comes from configuration.
type LoginRequest struct {
	Password string `json:"password" validate:"required,max=1024"`
}

// LoginResult is what a successful login hands to the transport layer. Token
// becomes the session cookie value and is never serialized.
type LoginResult struct {
	Token     string    `json:"-"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"-"`
}

type LoginResponse struct {
	Message   string `json:"message"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expires_at"`
}

func (l *LoginResponse) FromResult(result LoginResult) {
	l.Message = "Login successful"
	l.Username = result.Username
	l.ExpiresAt = timezone.Format(result.ExpiresAt, constant.DateFormat)
}

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	Username  string
	SessionID string
}

type VerifyResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
}
