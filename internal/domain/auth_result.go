package domain

import "time"

// AuthResult bundles the outcome of a successful login or refresh. The raw
// refresh token is transmitted once and never persisted.
type AuthResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	SessionID             string    `json:"session_id"`
}

// Otp carries the one-time raw secret alongside what was persisted. Like
// AuthResult it is produced, returned once, and never stored.
type Otp struct {
	Code      string    `json:"code"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
