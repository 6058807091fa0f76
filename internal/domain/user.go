package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type UserStatus string

const (
	StatusPendingVerification UserStatus = "PENDING_VERIFICATION"
	StatusActive              UserStatus = "ACTIVE"
	StatusSuspended           UserStatus = "SUSPENDED"
	StatusBanned              UserStatus = "BANNED"
)

type User struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	Email           string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash    string     `json:"-"`
	Role            UserRole   `json:"role" gorm:"size:16;not null;default:USER"`
	Status          UserStatus `json:"status" gorm:"size:32;not null;index"`
	FirstName       string     `json:"first_name,omitempty"`
	LastName        string     `json:"last_name,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

func (u *User) IsPendingVerification() bool {
	return u.Status == StatusPendingVerification
}

// Activated returns the column values an activation must persist. The caller
// applies them through a repository update instead of mutating the shared
// entity in place.
func (u *User) Activated(now time.Time) map[string]any {
	return map[string]any{
		"status":            StatusActive,
		"email_verified_at": now,
		"last_login_at":     now,
		"updated_at":        now,
	}
}
