package auth

import (
	"context"
	"log"
	"time"

	"authbox/internal/domain"
	"authbox/internal/otp"
	"authbox/internal/repository"
)

// CreateUserTokenInput binds a new session to a user. Remember switches the
// refresh window; IP and user agent are recorded on the session row.
type CreateUserTokenInput struct {
	UserID    int64
	Remember  bool
	IPAddress *string
	UserAgent *string
}

// RefreshResult reports a successful rotation.
type RefreshResult struct {
	Auth    *domain.AuthResult
	Rotated bool
}

// TokenService owns the session/refresh-token lifecycle: issuance, rotation
// and revocation. Sessions move ACTIVE -> REVOKED (terminal) or expire
// lazily on use; no background sweep runs here.
type TokenService struct {
	repo        AuthTokenRepository
	gen         *otp.Generator
	signer      TokenSigner
	refreshTTL  time.Duration
	rememberTTL time.Duration
}

func NewTokenService(
	repo AuthTokenRepository,
	gen *otp.Generator,
	signer TokenSigner,
	refreshTTL time.Duration,
	rememberTTL time.Duration,
) *TokenService {
	return &TokenService{
		repo:        repo,
		gen:         gen,
		signer:      signer,
		refreshTTL:  refreshTTL,
		rememberTTL: rememberTTL,
	}
}

// CreateUserToken creates a session, mints the first refresh token bound to
// it and signs an access token. All writes belong to the caller's
// transaction context, so a half-created session is never observable.
func (s *TokenService) CreateUserToken(ctx context.Context, in CreateUserTokenInput) (*domain.AuthResult, error) {
	now := time.Now()
	ttl := s.refreshTTL
	if in.Remember {
		ttl = s.rememberTTL
	}
	expiresAt := now.Add(ttl)

	session, err := s.repo.CreateSession(ctx, repository.CreateSessionInput{
		UserID:    in.UserID,
		ExpiresAt: expiresAt,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	})
	if err != nil {
		return nil, persistenceError("createSession", in.UserID, err)
	}

	raw, err := s.gen.GenerateToken()
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.CreateRefreshToken(ctx, repository.CreateRefreshTokenInput{
		UserID:    in.UserID,
		SessionID: session.ID,
		TokenHash: s.gen.HashToken(raw),
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, persistenceError("createRefreshToken", session.ID, err)
	}

	accessToken, err := s.signer.SignAccessToken(in.UserID, session.ID, now)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{
		AccessToken:           accessToken,
		RefreshToken:          raw,
		RefreshTokenExpiresAt: expiresAt,
		SessionID:             session.ID,
	}, nil
}

// RefreshTokens exchanges a raw refresh token for a fresh pair. It returns
// (nil, nil) when the token is unknown, expired or revoked; the caller maps
// that to one indistinguishable rejection. A valid token is revoked before
// its replacement is minted, so each token rotates at most once, and the
// replacement keeps the original absolute expiry so rotation never extends
// the session's lifetime.
func (s *TokenService) RefreshTokens(ctx context.Context, rawToken string) (*RefreshResult, error) {
	stored, err := s.repo.FindRefreshTokenByHash(ctx, s.gen.HashToken(rawToken))
	if err != nil {
		return nil, persistenceError("findRefreshTokenByHash", nil, err)
	}
	if stored == nil {
		return nil, nil
	}

	now := time.Now()
	if stored.IsExpired(now) || stored.IsRevoked() {
		// Best effort: the rejection stands even if the secondary revokes
		// fail.
		if err := s.repo.RevokeRefreshToken(ctx, stored.ID); err != nil {
			log.Printf("auth: refresh token revoke failed token_id=%d err=%v", stored.ID, err)
		}
		if err := s.repo.RevokeSession(ctx, stored.SessionID); err != nil {
			log.Printf("auth: session revoke failed session_id=%s err=%v", stored.SessionID, err)
		}
		return nil, nil
	}

	if err := s.repo.RevokeRefreshToken(ctx, stored.ID); err != nil {
		return nil, persistenceError("revokeRefreshToken", stored.ID, err)
	}

	nextRaw, err := s.gen.GenerateToken()
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.CreateRefreshToken(ctx, repository.CreateRefreshTokenInput{
		UserID:    stored.UserID,
		SessionID: stored.SessionID,
		TokenHash: s.gen.HashToken(nextRaw),
		ExpiresAt: stored.ExpiresAt,
	}); err != nil {
		return nil, persistenceError("createRefreshToken", stored.SessionID, err)
	}

	// session was just used; the bump is incidental metadata
	if err := s.repo.TouchSession(ctx, stored.SessionID); err != nil {
		log.Printf("auth: session touch failed session_id=%s err=%v", stored.SessionID, err)
	}

	accessToken, err := s.signer.SignAccessToken(stored.UserID, stored.SessionID, now)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		Auth: &domain.AuthResult{
			AccessToken:           accessToken,
			RefreshToken:          nextRaw,
			RefreshTokenExpiresAt: stored.ExpiresAt,
			SessionID:             stored.SessionID,
		},
		Rotated: true,
	}, nil
}

// Logout revokes the refresh token and its owning session. An empty token is
// a no-op; an unknown token fails; revoke failures on a known token are
// logged and swallowed so logout stays best-effort terminal.
func (s *TokenService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	stored, err := s.repo.FindRefreshTokenByHash(ctx, s.gen.HashToken(rawToken))
	if err != nil {
		return persistenceError("findRefreshTokenByHash", nil, err)
	}
	if stored == nil {
		return ErrRefreshTokenInvalidOrExpired
	}
	if err := s.repo.RevokeRefreshToken(ctx, stored.ID); err != nil {
		log.Printf("auth: refresh token revoke failed token_id=%d err=%v", stored.ID, err)
	}
	if err := s.repo.RevokeSession(ctx, stored.SessionID); err != nil {
		log.Printf("auth: session revoke failed session_id=%s err=%v", stored.SessionID, err)
	}
	return nil
}

// RevokeSession invalidates one session: all of its refresh tokens first,
// then the session itself.
func (s *TokenService) RevokeSession(ctx context.Context, sessionID string) error {
	if err := s.repo.RevokeAllForSession(ctx, sessionID); err != nil {
		return persistenceError("revokeAllForSession", sessionID, err)
	}
	if err := s.repo.RevokeSession(ctx, sessionID); err != nil {
		return persistenceError("revokeSession", sessionID, err)
	}
	return nil
}

// RevokeAllUserSessions bulk-revokes every refresh token the user holds.
// Session rows are left to expire; without a valid refresh token they can no
// longer mint access tokens.
func (s *TokenService) RevokeAllUserSessions(ctx context.Context, userID int64) error {
	if err := s.repo.RevokeAllForUser(ctx, userID); err != nil {
		return persistenceError("revokeAllForUser", userID, err)
	}
	return nil
}
