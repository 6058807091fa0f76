package repository

import (
	"context"
	"errors"
	"time"

	"authbox/internal/domain"
	"authbox/internal/uow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateSessionInput struct {
	UserID    int64
	ExpiresAt time.Time
	IPAddress *string
	UserAgent *string
}

type CreateRefreshTokenInput struct {
	UserID    int64
	SessionID string
	TokenHash string
	ExpiresAt time.Time
}

// AuthTokenRepository provides DB access for sessions and refresh tokens.
// Every method routes through uow.DB so calls made inside a unit of work hit
// the ambient transaction.
type AuthTokenRepository struct {
	db *gorm.DB
}

func NewAuthTokenRepository(db *gorm.DB) *AuthTokenRepository {
	return &AuthTokenRepository{db: db}
}

func (r *AuthTokenRepository) CreateSession(ctx context.Context, in CreateSessionInput) (*domain.Session, error) {
	s := domain.Session{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		ExpiresAt: in.ExpiresAt,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	}
	if err := uow.DB(ctx, r.db).Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// RevokeSession stamps revoked_at once; a session already revoked or already
// gone is left untouched.
func (r *AuthTokenRepository) RevokeSession(ctx context.Context, sessionID string) error {
	now := time.Now().UTC()
	return uow.DB(ctx, r.db).Model(&domain.Session{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Updates(map[string]any{"revoked_at": now, "updated_at": now}).Error
}

func (r *AuthTokenRepository) TouchSession(ctx context.Context, sessionID string) error {
	return uow.DB(ctx, r.db).Model(&domain.Session{}).
		Where("id = ?", sessionID).
		Update("updated_at", time.Now().UTC()).Error
}

func (r *AuthTokenRepository) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var s domain.Session
	err := uow.DB(ctx, r.db).Where("id = ?", sessionID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AuthTokenRepository) CreateRefreshToken(ctx context.Context, in CreateRefreshTokenInput) (*domain.RefreshToken, error) {
	t := domain.RefreshToken{
		UserID:    in.UserID,
		SessionID: in.SessionID,
		TokenHash: in.TokenHash,
		ExpiresAt: in.ExpiresAt,
	}
	if err := uow.DB(ctx, r.db).Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// FindRefreshTokenByHash returns (nil, nil) when no row matches; absence is a
// business outcome, not an error.
func (r *AuthTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := uow.DB(ctx, r.db).Where("token_hash = ?", tokenHash).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *AuthTokenRepository) RevokeRefreshToken(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return uow.DB(ctx, r.db).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Updates(map[string]any{"revoked_at": now, "last_used_at": now, "updated_at": now}).Error
}

func (r *AuthTokenRepository) RevokeAllForSession(ctx context.Context, sessionID string) error {
	now := time.Now().UTC()
	return uow.DB(ctx, r.db).Model(&domain.RefreshToken{}).
		Where("session_id = ? AND revoked_at IS NULL", sessionID).
		Updates(map[string]any{"revoked_at": now, "updated_at": now}).Error
}

func (r *AuthTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	now := time.Now().UTC()
	return uow.DB(ctx, r.db).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Updates(map[string]any{"revoked_at": now, "updated_at": now}).Error
}

// DeleteExpired is the explicit cleanup path; it tolerates rows that are
// already gone.
func (r *AuthTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	res := uow.DB(ctx, r.db).
		Where("expires_at < ?", now).
		Delete(&domain.RefreshToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	deleted := res.RowsAffected
	res = uow.DB(ctx, r.db).
		Where("expires_at < ?", now).
		Delete(&domain.Session{})
	if res.Error != nil {
		return deleted, res.Error
	}
	return deleted + res.RowsAffected, nil
}
