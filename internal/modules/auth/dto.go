package auth

import "time"

type RegisterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RegisterResponse struct {
	Email             string     `json:"email"`
	VerificationToken *string    `json:"verification_token,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
}

type VerifyEmailRequest struct {
	Email             string `json:"email" binding:"required,email"`
	Code              string `json:"code" binding:"required"`
	VerificationToken string `json:"verification_token" binding:"required"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenPairResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	SessionID             string    `json:"session_id"`
}

type UserResponse struct {
	ID              int64      `json:"id"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
