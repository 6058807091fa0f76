package auth

import (
	"context"
	"errors"

	"authbox/internal/domain"
	"authbox/internal/modules/user"
)

type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
	IPAddress  *string
	UserAgent  *string
}

// AuthUseCase coordinates credential verification and the token lifecycle,
// one transaction per operation.
type AuthUseCase struct {
	uow    UnitOfWork
	users  UserDirectory
	tokens *TokenService
}

func NewAuthUseCase(uow UnitOfWork, users UserDirectory, tokens *TokenService) *AuthUseCase {
	return &AuthUseCase{uow: uow, users: users, tokens: tokens}
}

// Login checks the credentials in one transaction and issues the token pair
// in a second one, bridged by the returned user id. A crash between the two
// leaves no tokens issued and the caller simply retries.
func (u *AuthUseCase) Login(ctx context.Context, in LoginInput) (*domain.AuthResult, error) {
	var userID int64
	err := u.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		userID, err = u.users.CheckCredentials(ctx, in.Email, in.Password)
		return err
	})
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return u.CreateAuthTokenForUser(ctx, CreateUserTokenInput{
		UserID:    userID,
		Remember:  in.RememberMe,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	})
}

// CreateAuthTokenForUser issues a session plus token pair inside one
// transaction; session and refresh token commit together or not at all.
func (u *AuthUseCase) CreateAuthTokenForUser(ctx context.Context, in CreateUserTokenInput) (*domain.AuthResult, error) {
	var result *domain.AuthResult
	err := u.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = u.tokens.CreateUserToken(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RefreshFromToken rotates the pair or rejects with one indistinguishable
// error, whatever the underlying reason. The rejection is mapped after the
// transaction commits so the best-effort revocations stick.
func (u *AuthUseCase) RefreshFromToken(ctx context.Context, rawToken string) (*RefreshResult, error) {
	var result *RefreshResult
	err := u.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = u.tokens.RefreshTokens(ctx, rawToken)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrRefreshTokenInvalidOrExpired
	}
	return result, nil
}

func (u *AuthUseCase) Logout(ctx context.Context, rawToken string) error {
	return u.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		return u.tokens.Logout(ctx, rawToken)
	})
}
