package domain

import (
	"strings"
	"time"
)

// EmailVerification is a short-lived proof that a user controls an email
// address. The email column always holds the lowercased, trimmed form; only
// the hash of the link token is stored.
type EmailVerification struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	UserID     int64      `json:"user_id" gorm:"index;not null"`
	Email      string     `json:"email" gorm:"index;not null"`
	Code       string     `json:"-" gorm:"size:16;not null"`
	TokenHash  string     `json:"-" gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt  time.Time  `json:"expires_at" gorm:"index;not null"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (v *EmailVerification) IsExpired(now time.Time) bool {
	return !v.ExpiresAt.After(now)
}

func (v *EmailVerification) IsVerified() bool {
	return v.VerifiedAt != nil
}

// IsValid requires an exact code match, a normalized-email match, and that
// the entry is neither expired nor already consumed.
func (v *EmailVerification) IsValid(code, email string, now time.Time) bool {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return v.Code == code &&
		v.Email == normalized &&
		!v.IsExpired(now) &&
		!v.IsVerified()
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
