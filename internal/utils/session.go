package utils

import (
	"time"

	"github.com/google/uuid"
)

// SessionData is what the session middleware needs to know about a token.
type SessionData struct {
	UserID    uint
	ExpiresAt time.Time
}

func (s SessionData) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// GenerateToken returns a fresh opaque session token.
func GenerateToken() string {
	return uuid.NewString()
}
