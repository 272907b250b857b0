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

// TagService exposes catalog operations on tags.
type TagService interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	CreateTag(ctx context.Context, title, description string, userID uint) (*model.Tag, error)
	UpdateTag(ctx context.Context, id uint, title, description string, userID uint) (*model.Tag, error)
	DeleteTag(ctx context.Context, id uint) (*model.Tag, error)
}

type tagService struct {
	repo repository.TagRepository
}

// NewTagService builds a TagService.
func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return s.repo.List(ctx)
}

// CreateTag enforces title uniqueness. The read-first check gives the common
// case a clean conflict error; the unique index catches the remaining race,
// so a duplicate insert can never slip through between check and create.
func (s *tagService) CreateTag(ctx context.Context, title, description string, userID uint) (*model.Tag, error) {
	existing, err := s.repo.FindByTitle(ctx, title)
	if err == nil && existing != nil {
		return nil, apperrors.ErrTagTitleTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check tag title: %w", err)
	}

	tag := &model.Tag{
		Title:       title,
		Description: description,
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrTagTitleTaken
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, id uint, title, description string, userID uint) (*model.Tag, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}

	tag.Title = title
	tag.Description = description
	tag.UserID = userID

	if err := s.repo.Update(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrTagTitleTaken
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id uint) (*model.Tag, error) {
	tag, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, fmt.Errorf("delete tag: %w", err)
	}
	return tag, nil
}
