package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndValidate(t *testing.T) {
	svc := New("test-secret", 15*time.Minute)

	now := time.Now()
	token, err := svc.SignAccessToken(42, "sess-abc", now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "sess-abc", claims.SessionID)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := New("secret-a", 15*time.Minute).SignAccessToken(42, "sess-abc", time.Now())
	require.NoError(t, err)

	_, err = New("secret-b", 15*time.Minute).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	svc := New("test-secret", time.Minute)

	token, err := svc.SignAccessToken(42, "sess-abc", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := New("test-secret", time.Minute).ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
