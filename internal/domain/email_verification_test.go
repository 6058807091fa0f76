package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validEntry(now time.Time) *EmailVerification {
	return &EmailVerification{
		ID:        1,
		UserID:    10,
		Email:     "user@example.com",
		Code:      "123456",
		TokenHash: "abc",
		ExpiresAt: now.Add(10 * time.Minute),
	}
}

func TestEmailVerification_IsValid(t *testing.T) {
	now := time.Now()
	v := validEntry(now)

	assert.True(t, v.IsValid("123456", "user@example.com", now))
}

func TestEmailVerification_IsValid_NormalizesEmail(t *testing.T) {
	now := time.Now()
	v := validEntry(now)

	assert.True(t, v.IsValid("123456", "  USER@Example.COM ", now))
	assert.True(t, v.IsValid("123456", " User@example.com ", now))
}

func TestEmailVerification_IsValid_CodeMismatch(t *testing.T) {
	now := time.Now()
	v := validEntry(now)

	assert.False(t, v.IsValid("654321", "user@example.com", now))
}

func TestEmailVerification_IsValid_Expired(t *testing.T) {
	now := time.Now()
	v := validEntry(now)
	v.ExpiresAt = now.Add(-time.Millisecond)

	assert.False(t, v.IsValid("123456", "user@example.com", now))
}

func TestEmailVerification_ExpiryBoundary(t *testing.T) {
	now := time.Now()
	v := validEntry(now)
	v.ExpiresAt = now

	// an entry whose expiry equals the current instant is already expired
	assert.True(t, v.IsExpired(now))
	assert.False(t, v.IsValid("123456", "user@example.com", now))
}

func TestEmailVerification_IsValid_AlreadyConsumed(t *testing.T) {
	now := time.Now()
	v := validEntry(now)
	verifiedAt := now.Add(-time.Minute)
	v.VerifiedAt = &verifiedAt

	assert.False(t, v.IsValid("123456", "user@example.com", now))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  USER@Example.COM "))
}
