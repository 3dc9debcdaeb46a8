package services

import (
	"context"
	"fmt"

	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/app/repositories"
	"github.com/themirzaalibaig/server-ecommerce/pkg/auth"
)

// SignupInput carries the validated signup payload.
type SignupInput struct {
	Username string
	Email    string
	Phone    string
	Password string
	Image    string
}

type AuthService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Signup creates a user and returns it with a fresh token.
// Uniqueness of username/email/phone is checked up front for a friendly
// fast path, but the unique indexes are the source of truth: a concurrent
// insert surfaces as a duplicate-key error which is translated into the
// same field-scoped conflict.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	if field, taken, err := s.users.ExistsByAny(ctx, in.Username, in.Email, in.Phone); err != nil {
		return nil, "", fmt.Errorf("services: signup pre-check: %w", err)
	} else if taken {
		return nil, "", conflictFor(field)
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("services: hash password: %w", err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: hashed,
		Role:     models.RoleUser,
		IsActive: true,
		Image:    in.Image,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if field, ok := repositories.IsDuplicate(err); ok {
			return nil, "", conflictFor(field)
		}
		return nil, "", fmt.Errorf("services: create user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("services: issue token: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == repositories.ErrNoDocument {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("services: login lookup: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("services: issue token: %w", err)
	}
	return user, token, nil
}

func conflictFor(field string) *ConflictError {
	return &ConflictError{
		Field:   field,
		Message: fmt.Sprintf("%s is already taken", field),
	}
}
