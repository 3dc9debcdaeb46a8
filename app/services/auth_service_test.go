package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/app/repositories"
	"github.com/themirzaalibaig/server-ecommerce/pkg/auth"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ExistsByAny(ctx context.Context, username, email, phone string) (string, bool, error) {
	args := m.Called(ctx, username, email, phone)
	return args.String(0), args.Bool(1), args.Error(2)
}

func validSignup() SignupInput {
	return SignupInput{
		Username: "mira",
		Email:    "mira@example.com",
		Phone:    "+15550001111",
		Password: "secret123",
	}
}

func TestSignupSuccess(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("ExistsByAny", mock.Anything, "mira", "mira@example.com", "+15550001111").
		Return("", false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	svc := NewAuthService(repo)
	user, token, err := svc.Signup(context.Background(), validSignup())

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))
	repo.AssertExpectations(t)
}

func TestSignupDuplicateFastPath(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("ExistsByAny", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("email", true, nil)

	svc := NewAuthService(repo)
	_, _, err := svc.Signup(context.Background(), validSignup())

	conflict, ok := AsConflict(err)
	assert.True(t, ok)
	assert.Equal(t, "email", conflict.Field)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignupDuplicateRace(t *testing.T) {
	// Pre-check passes but the insert loses the race: the duplicate-key
	// error must surface as the same field-scoped conflict.
	repo := new(mockUserRepo)
	repo.On("ExistsByAny", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", false, nil)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(&repositories.DuplicateKeyError{Field: "username"})

	svc := NewAuthService(repo)
	_, _, err := svc.Signup(context.Background(), validSignup())

	conflict, ok := AsConflict(err)
	assert.True(t, ok)
	assert.Equal(t, "username", conflict.Field)
}

func TestLoginSuccess(t *testing.T) {
	hashed, _ := auth.HashPassword("secret123")
	stored := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "mira@example.com",
		Password: hashed,
		Role:     models.RoleUser,
		IsActive: true,
	}

	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "mira@example.com").Return(stored, nil)

	svc := NewAuthService(repo)
	user, token, err := svc.Login(context.Background(), "mira@example.com", "secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, stored.ID, user.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	hashed, _ := auth.HashPassword("secret123")
	stored := &models.User{Email: "mira@example.com", Password: hashed, IsActive: true}

	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "mira@example.com").Return(stored, nil)

	svc := NewAuthService(repo)
	_, _, err := svc.Login(context.Background(), "mira@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, repositories.ErrNoDocument)

	svc := NewAuthService(repo)
	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")

	// Same error as a wrong password so callers cannot probe for accounts.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeactivated(t *testing.T) {
	hashed, _ := auth.HashPassword("secret123")
	stored := &models.User{Email: "mira@example.com", Password: hashed, IsActive: false}

	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "mira@example.com").Return(stored, nil)

	svc := NewAuthService(repo)
	_, _, err := svc.Login(context.Background(), "mira@example.com", "secret123")

	assert.ErrorIs(t, err, ErrAccountDisabled)
}
