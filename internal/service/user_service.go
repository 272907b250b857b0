package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "vidshelf/internal/errors"
	"vidshelf/internal/model"
	"vidshelf/internal/repository"
)

// UserService exposes account management operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uint, username, email, role string) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, id uint, username, email, role string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if role != "" && !model.ValidRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	user.Username = username
	user.Email = email
	if role != "" {
		user.Role = role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes an account. Superadmin accounts can never be deleted,
// regardless of who asks.
func (s *userService) DeleteUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.Role == model.RoleSuperadmin {
		return nil, apperrors.ErrSuperadminProtected
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return deleted, nil
}
