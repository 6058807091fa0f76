package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"authbox/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func TestService_FindOrCreate_ExistingUser(t *testing.T) {
	repo := new(mockUserRepo)
	existing := &domain.User{ID: 1, Email: "user@example.com", Status: domain.StatusActive}
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(existing, nil)

	svc := NewService(repo, NewBcryptHasher())

	u, err := svc.FindOrCreate(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.Equal(t, existing, u)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_FindOrCreate_NewUserIsPending(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "  NEW@Example.com ").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com" &&
			u.Status == domain.StatusPendingVerification &&
			u.Role == domain.RoleUser
	})).Return(nil)

	svc := NewService(repo, NewBcryptHasher())

	u, err := svc.FindOrCreate(context.Background(), "  NEW@Example.com ")

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", u.Email)
	repo.AssertExpectations(t)
}

func TestService_CheckCredentials(t *testing.T) {
	repo := new(mockUserRepo)
	hasher := NewBcryptHasher()
	hash, err := hasher.Hash("secret-password")
	require.NoError(t, err)

	stored := &domain.User{ID: 7, Email: "user@example.com", PasswordHash: hash}
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(stored, nil)

	svc := NewService(repo, hasher)

	id, err := svc.CheckCredentials(context.Background(), "user@example.com", "secret-password")
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)

	_, err = svc.CheckCredentials(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_CheckCredentials_UnknownUser(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	svc := NewService(repo, NewBcryptHasher())

	_, err := svc.CheckCredentials(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_CheckCredentials_NoPasswordSet(t *testing.T) {
	repo := new(mockUserRepo)
	stored := &domain.User{ID: 7, Email: "user@example.com"}
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(stored, nil)

	svc := NewService(repo, NewBcryptHasher())

	_, err := svc.CheckCredentials(context.Background(), "user@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Activate(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("UpdateFields", mock.Anything, int64(5), mock.MatchedBy(func(fields map[string]any) bool {
		return fields["status"] == domain.StatusActive &&
			fields["email_verified_at"] != nil &&
			fields["last_login_at"] != nil
	})).Return(nil)

	svc := NewService(repo, NewBcryptHasher())

	err := svc.Activate(context.Background(), &domain.User{ID: 5, Status: domain.StatusPendingVerification})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
