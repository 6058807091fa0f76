package auth

import (
	"context"
	"time"

	"authbox/internal/domain"
)

// RegisterEmailResult echoes the raw verification token and expiry so the
// caller (and test harnesses) can drive the verify step. Token and expiry
// stay nil when no new OTP was issued.
type RegisterEmailResult struct {
	Email             string
	VerificationToken *string
	ExpiresAt         *time.Time
}

type VerifyEmailInput struct {
	Email             string
	Code              string
	VerificationToken string
}

// RegistrationUseCase drives a user from PENDING_VERIFICATION to ACTIVE:
// find-or-create, OTP issuance, email dispatch, then code+token validation
// and activation. Each operation runs inside one transaction.
type RegistrationUseCase struct {
	uow          UnitOfWork
	users        UserDirectory
	verification *VerificationService
	mailer       Mailer
}

func NewRegistrationUseCase(
	uow UnitOfWork,
	users UserDirectory,
	verification *VerificationService,
	mailer Mailer,
) *RegistrationUseCase {
	return &RegistrationUseCase{
		uow:          uow,
		users:        users,
		verification: verification,
		mailer:       mailer,
	}
}

// RegisterEmail is idempotent on the email: an unknown address creates a
// pending user, a pending user gets a fresh OTP, an active user is rejected,
// and any other state (suspended, banned) returns no token at all.
func (u *RegistrationUseCase) RegisterEmail(ctx context.Context, email string) (*RegisterEmailResult, error) {
	var result *RegisterEmailResult
	err := u.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		user, err := u.users.FindOrCreate(ctx, email)
		if err != nil {
			return err
		}
		if user.IsActive() {
			return ErrAlreadyVerified.With(map[string]any{"email": user.Email})
		}

		result = &RegisterEmailResult{Email: user.Email}
		if !user.IsPendingVerification() {
			return nil
		}

		otpEntity, err := u.verification.CreateForUser(ctx, user.ID, email)
		if err != nil {
			return err
		}
		if err := u.mailer.SendVerificationEmail(ctx, user.Email, otpEntity); err != nil {
			return ErrEmailSendFailed.With(map[string]any{"email": user.Email, "cause": err.Error()})
		}
		result.VerificationToken = &otpEntity.Token
		result.ExpiresAt = &otpEntity.ExpiresAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// VerifyEmail validates code and token against the stored entry, activates
// the user and consumes the entry so it cannot be replayed.
func (u *RegistrationUseCase) VerifyEmail(ctx context.Context, in VerifyEmailInput) (*domain.EmailVerification, error) {
	var entry *domain.EmailVerification
	err := u.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		entry, err = u.verification.GetFromToken(ctx, in.VerificationToken)
		if err != nil {
			return err
		}

		if !entry.IsValid(in.Code, in.Email, time.Now()) {
			return ErrVerificationCodeInvalid.With(map[string]any{"email": in.Email})
		}

		user, err := u.users.FindOrCreate(ctx, in.Email)
		if err != nil {
			return err
		}
		if !user.IsPendingVerification() {
			return ErrNotPendingVerification.With(map[string]any{"email": user.Email, "status": user.Status})
		}
		if err := u.users.Activate(ctx, user); err != nil {
			return err
		}

		return u.verification.ConsumeToken(ctx, in.VerificationToken)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
