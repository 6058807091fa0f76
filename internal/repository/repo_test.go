package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"authbox/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database shared across queries
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.RefreshToken{},
		&domain.EmailVerification{},
	))
	return db
}

func TestAuthTokenRepository_SessionAndTokenLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthTokenRepository(db)
	ctx := context.Background()

	s, err := repo.CreateSession(ctx, CreateSessionInput{
		UserID:    1,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)

	tok, err := repo.CreateRefreshToken(ctx, CreateRefreshTokenInput{
		UserID:    1,
		SessionID: s.ID,
		TokenHash: "hash-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	got, err := repo.FindRefreshTokenByHash(ctx, "hash-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tok.ID, got.ID)
	assert.Equal(t, s.ID, got.SessionID)

	missing, err := repo.FindRefreshTokenByHash(ctx, "no-such-hash")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAuthTokenRepository_TouchSessionBumpsUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthTokenRepository(db)
	ctx := context.Background()

	s, err := repo.CreateSession(ctx, CreateSessionInput{UserID: 1, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.TouchSession(ctx, s.ID))

	touched, err := repo.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, touched.UpdatedAt.After(s.UpdatedAt))
	assert.Nil(t, touched.RevokedAt)
}

func TestAuthTokenRepository_RevokeRefreshTokenIsTerminal(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthTokenRepository(db)
	ctx := context.Background()

	s, err := repo.CreateSession(ctx, CreateSessionInput{UserID: 1, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	tok, err := repo.CreateRefreshToken(ctx, CreateRefreshTokenInput{
		UserID: 1, SessionID: s.ID, TokenHash: "hash-1", ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, repo.RevokeRefreshToken(ctx, tok.ID))

	first, err := repo.FindRefreshTokenByHash(ctx, "hash-1")
	require.NoError(t, err)
	require.NotNil(t, first.RevokedAt)
	firstStamp := *first.RevokedAt

	// a second revocation must not move the original timestamp
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.RevokeRefreshToken(ctx, tok.ID))

	second, err := repo.FindRefreshTokenByHash(ctx, "hash-1")
	require.NoError(t, err)
	require.NotNil(t, second.RevokedAt)
	assert.True(t, second.RevokedAt.Equal(firstStamp))
}

func TestAuthTokenRepository_RevokeSessionIsTerminal(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthTokenRepository(db)
	ctx := context.Background()

	s, err := repo.CreateSession(ctx, CreateSessionInput{UserID: 1, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	require.NoError(t, repo.RevokeSession(ctx, s.ID))

	first, err := repo.GetSession(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, first.RevokedAt)
	firstStamp := *first.RevokedAt

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.RevokeSession(ctx, s.ID))

	second, err := repo.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, second.RevokedAt.Equal(firstStamp))
}

func TestAuthTokenRepository_RevokeAllForUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthTokenRepository(db)
	ctx := context.Background()

	s1, err := repo.CreateSession(ctx, CreateSessionInput{UserID: 1, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	s2, err := repo.CreateSession(ctx, CreateSessionInput{UserID: 1, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	for i, sid := range []string{s1.ID, s2.ID} {
		_, err := repo.CreateRefreshToken(ctx, CreateRefreshTokenInput{
			UserID: 1, SessionID: sid, TokenHash: "hash-" + sid, ExpiresAt: time.Now().Add(time.Hour),
		})
		require.NoError(t, err, "token %d", i)
	}
	_, err = repo.CreateRefreshToken(ctx, CreateRefreshTokenInput{
		UserID: 2, SessionID: s2.ID, TokenHash: "other-user", ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, repo.RevokeAllForUser(ctx, 1))

	var revoked int64
	require.NoError(t, db.Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NOT NULL", 1).Count(&revoked).Error)
	assert.EqualValues(t, 2, revoked)

	untouched, err := repo.FindRefreshTokenByHash(ctx, "other-user")
	require.NoError(t, err)
	assert.Nil(t, untouched.RevokedAt)
}

func TestAuthTokenRepository_DeleteExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthTokenRepository(db)
	ctx := context.Background()

	live, err := repo.CreateSession(ctx, CreateSessionInput{UserID: 1, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	dead, err := repo.CreateSession(ctx, CreateSessionInput{UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)})
	require.NoError(t, err)

	_, err = repo.CreateRefreshToken(ctx, CreateRefreshTokenInput{
		UserID: 1, SessionID: live.ID, TokenHash: "live", ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = repo.CreateRefreshToken(ctx, CreateRefreshTokenInput{
		UserID: 1, SessionID: dead.ID, TokenHash: "dead", ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = repo.GetSession(ctx, live.ID)
	assert.NoError(t, err)
	kept, err := repo.FindRefreshTokenByHash(ctx, "live")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestEmailVerificationRepository_FindValidFiltersExpiredAndConsumed(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmailVerificationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, CreateEmailVerificationInput{
		UserID: 1, Email: "a@example.com", Code: "111111",
		TokenHash: "fresh", ExpiresAt: time.Now().Add(10 * time.Minute),
	}))
	require.NoError(t, repo.Create(ctx, CreateEmailVerificationInput{
		UserID: 1, Email: "a@example.com", Code: "222222",
		TokenHash: "stale", ExpiresAt: time.Now().Add(-time.Minute),
	}))

	got, err := repo.FindValidByTokenHash(ctx, "fresh")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "111111", got.Code)

	expired, err := repo.FindValidByTokenHash(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, expired)

	require.NoError(t, repo.Consume(ctx, "fresh"))

	consumed, err := repo.FindValidByTokenHash(ctx, "fresh")
	require.NoError(t, err)
	assert.Nil(t, consumed)
}

func TestEmailVerificationRepository_ConsumeIsOneShot(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmailVerificationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, CreateEmailVerificationInput{
		UserID: 1, Email: "a@example.com", Code: "111111",
		TokenHash: "once", ExpiresAt: time.Now().Add(10 * time.Minute),
	}))
	require.NoError(t, repo.Consume(ctx, "once"))

	var v domain.EmailVerification
	require.NoError(t, db.Where("token_hash = ?", "once").First(&v).Error)
	require.NotNil(t, v.VerifiedAt)
	firstStamp := *v.VerifiedAt

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Consume(ctx, "once"))

	require.NoError(t, db.Where("token_hash = ?", "once").First(&v).Error)
	assert.True(t, v.VerifiedAt.Equal(firstStamp))
}

func TestEmailVerificationRepository_CreateNormalizesEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmailVerificationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, CreateEmailVerificationInput{
		UserID: 1, Email: "  MiXeD@Example.COM ", Code: "111111",
		TokenHash: "norm", ExpiresAt: time.Now().Add(10 * time.Minute),
	}))

	got, err := repo.FindValidByTokenHash(ctx, "norm")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "mixed@example.com", got.Email)
}

func TestUserRepository_FindByEmailNormalizes(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{Email: "User@Example.com", Status: domain.StatusPendingVerification, Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "user@example.com", u.Email)

	got, err := repo.FindByEmail(ctx, "  USER@example.COM ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
