package auth

import (
	"context"
	"time"

	"authbox/internal/domain"
	"authbox/internal/otp"
	"authbox/internal/repository"
)

// VerificationService orchestrates OTP creation, lookup and consumption for
// email verification.
type VerificationService struct {
	repo       EmailVerificationRepository
	gen        *otp.Generator
	codeLength int
	codeTTL    time.Duration
}

func NewVerificationService(
	repo EmailVerificationRepository,
	gen *otp.Generator,
	codeLength int,
	codeTTL time.Duration,
) *VerificationService {
	return &VerificationService{
		repo:       repo,
		gen:        gen,
		codeLength: codeLength,
		codeTTL:    codeTTL,
	}
}

// CreateForUser generates a fresh OTP and persists it against the normalized
// email. The returned Otp carries the raw token exactly once.
func (s *VerificationService) CreateForUser(ctx context.Context, userID int64, email string) (*domain.Otp, error) {
	full, err := s.gen.GenerateFullCode(s.codeLength, s.codeTTL)
	if err != nil {
		return nil, err
	}
	in := repository.CreateEmailVerificationInput{
		UserID:    userID,
		Email:     domain.NormalizeEmail(email),
		Code:      full.Code,
		TokenHash: full.TokenHash,
		ExpiresAt: full.ExpiresAt,
	}
	if err := s.repo.Create(ctx, in); err != nil {
		return nil, persistenceError("emailVerification.create", in, err)
	}
	return &domain.Otp{
		Code:      full.Code,
		Token:     full.Token,
		ExpiresAt: full.ExpiresAt,
	}, nil
}

// GetFromToken resolves a raw link token to its entry. Missing, expired and
// consumed entries collapse into one rejection.
func (s *VerificationService) GetFromToken(ctx context.Context, rawToken string) (*domain.EmailVerification, error) {
	entry, err := s.repo.FindValidByTokenHash(ctx, s.gen.HashToken(rawToken))
	if err != nil {
		return nil, persistenceError("emailVerification.findValidByTokenHash", nil, err)
	}
	if entry == nil {
		return nil, ErrVerificationTokenInvalidOrExpired
	}
	return entry, nil
}

// ConsumeToken marks the entry verified so it can never be reused.
func (s *VerificationService) ConsumeToken(ctx context.Context, rawToken string) error {
	if err := s.repo.Consume(ctx, s.gen.HashToken(rawToken)); err != nil {
		return persistenceError("emailVerification.consume", nil, err)
	}
	return nil
}
