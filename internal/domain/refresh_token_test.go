package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshToken_Expiry(t *testing.T) {
	now := time.Now()
	token := &RefreshToken{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, token.IsExpired(now))
	assert.True(t, token.IsActive(now))

	// expiry wins regardless of revoked state
	token.ExpiresAt = now
	assert.True(t, token.IsExpired(now))
	assert.False(t, token.IsActive(now))
}

func TestRefreshToken_Revoked(t *testing.T) {
	now := time.Now()
	revokedAt := now.Add(-time.Minute)
	token := &RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt}

	assert.True(t, token.IsRevoked())
	assert.False(t, token.IsActive(now))
}

func TestSession_Lifecycle(t *testing.T) {
	now := time.Now()
	s := &Session{ID: "sid", ExpiresAt: now.Add(time.Hour)}

	assert.True(t, s.IsActive(now))

	revokedAt := now
	s.RevokedAt = &revokedAt
	assert.True(t, s.IsRevoked())
	assert.False(t, s.IsActive(now))

	s2 := &Session{ID: "sid2", ExpiresAt: now.Add(-time.Millisecond)}
	assert.True(t, s2.IsExpired(now))
	assert.False(t, s2.IsActive(now))
}
