package auth

import (
	"context"
	"time"

	"authbox/internal/domain"
	"authbox/internal/repository"
)

// UnitOfWork opens an atomic scope; the context handed to fn must be
// threaded into every repository call made inside.
type UnitOfWork interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuthTokenRepository is the persistence contract for sessions and refresh
// tokens.
type AuthTokenRepository interface {
	CreateSession(ctx context.Context, in repository.CreateSessionInput) (*domain.Session, error)
	RevokeSession(ctx context.Context, sessionID string) error
	TouchSession(ctx context.Context, sessionID string) error
	CreateRefreshToken(ctx context.Context, in repository.CreateRefreshTokenInput) (*domain.RefreshToken, error)
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id int64) error
	RevokeAllForSession(ctx context.Context, sessionID string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// EmailVerificationRepository is the persistence contract for email
// verification entries. FindValidByTokenHash must filter consumed and
// expired entries server-side.
type EmailVerificationRepository interface {
	Create(ctx context.Context, in repository.CreateEmailVerificationInput) error
	FindValidByTokenHash(ctx context.Context, tokenHash string) (*domain.EmailVerification, error)
	Consume(ctx context.Context, tokenHash string) error
}

// TokenSigner turns access-token claims into a signed compact token.
// Verification and secret management live behind the adapter.
type TokenSigner interface {
	SignAccessToken(userID int64, sessionID string, issuedAt time.Time) (string, error)
}

// UserDirectory is the slice of the user module the auth use cases need.
type UserDirectory interface {
	FindOrCreate(ctx context.Context, email string) (*domain.User, error)
	CheckCredentials(ctx context.Context, email, password string) (int64, error)
	Activate(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Mailer delivers the verification email containing the code and link token.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email string, otp *domain.Otp) error
}
