package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vidshelf/internal/auth"
	apperrors "vidshelf/internal/errors"
	"vidshelf/internal/model"
	"vidshelf/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*model.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a new user with a hashed password. Role defaults to
// model.RoleUser when empty.
func (s *authService) Register(ctx context.Context, username, password, email, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashed),
		Email:        email,
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The unique index on username closes the check-then-create race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed bearer token carrying the
// user id and role.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}
