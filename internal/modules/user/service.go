package user

import (
	"context"
	"time"

	"authbox/internal/domain"
)

// Repository is the slice of user persistence the service needs.
type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
}

// PasswordHasher is the hash/compare contract; the bcrypt adapter lives in
// hasher.go.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// FindOrCreate makes registration idempotent on the email: an unknown
// address becomes a fresh PENDING_VERIFICATION user.
func (s *Service) FindOrCreate(ctx context.Context, email string) (*domain.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	u := &domain.User{
		Email:  domain.NormalizeEmail(email),
		Role:   domain.RoleUser,
		Status: domain.StatusPendingVerification,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CheckCredentials returns the user id when email and password match;
// unknown emails and wrong passwords fail identically.
func (s *Service) CheckCredentials(ctx context.Context, email, password string) (int64, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if u == nil || u.PasswordHash == "" {
		return 0, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return 0, ErrInvalidCredentials
	}
	return u.ID, nil
}

// SetPassword hashes and stores a new password.
func (s *Service) SetPassword(ctx context.Context, id int64, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, id, map[string]any{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	})
}

// Activate moves the user to ACTIVE, stamping email verification and last
// login in one conditional update.
func (s *Service) Activate(ctx context.Context, u *domain.User) error {
	return s.repo.UpdateFields(ctx, u.ID, u.Activated(time.Now().UTC()))
}
