package model

import "time"

// Principal is an authenticated caller as resolved by the identity provider.
type Principal struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}
