package repository

import (
	"context"
	"errors"
	"time"

	"authbox/internal/domain"
	"authbox/internal/uow"

	"gorm.io/gorm"
)

type CreateEmailVerificationInput struct {
	UserID    int64
	Email     string
	Code      string
	TokenHash string
	ExpiresAt time.Time
}

// EmailVerificationRepository provides DB access for email verification
// entries.
type EmailVerificationRepository struct {
	db *gorm.DB
}

func NewEmailVerificationRepository(db *gorm.DB) *EmailVerificationRepository {
	return &EmailVerificationRepository{db: db}
}

func (r *EmailVerificationRepository) Create(ctx context.Context, in CreateEmailVerificationInput) error {
	v := domain.EmailVerification{
		UserID:    in.UserID,
		Email:     domain.NormalizeEmail(in.Email),
		Code:      in.Code,
		TokenHash: in.TokenHash,
		ExpiresAt: in.ExpiresAt,
	}
	return uow.DB(ctx, r.db).Create(&v).Error
}

// FindValidByTokenHash applies the "not consumed and not expired" filter
// server-side; a consumed or expired entry is indistinguishable from a
// missing one.
func (r *EmailVerificationRepository) FindValidByTokenHash(ctx context.Context, tokenHash string) (*domain.EmailVerification, error) {
	var v domain.EmailVerification
	err := uow.DB(ctx, r.db).
		Where("token_hash = ? AND verified_at IS NULL AND expires_at > ?", tokenHash, time.Now().UTC()).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// Consume stamps verified_at exactly once.
func (r *EmailVerificationRepository) Consume(ctx context.Context, tokenHash string) error {
	now := time.Now().UTC()
	return uow.DB(ctx, r.db).Model(&domain.EmailVerification{}).
		Where("token_hash = ? AND verified_at IS NULL", tokenHash).
		Updates(map[string]any{"verified_at": now, "updated_at": now}).Error
}

func (r *EmailVerificationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	res := uow.DB(ctx, r.db).
		Where("expires_at < ? OR verified_at IS NOT NULL", now).
		Delete(&domain.EmailVerification{})
	return res.RowsAffected, res.Error
}
