package repository

import (
	"context"

	"gorm.io/gorm"

	"vidshelf/internal/model"
)

// TagRepository defines tag persistence operations.
type TagRepository interface {
	List(ctx context.Context) ([]model.Tag, error)
	FindByID(ctx context.Context, id uint) (*model.Tag, error)
	FindByTitle(ctx context.Context, title string) (*model.Tag, error)
	Create(ctx context.Context, tag *model.Tag) error
	Update(ctx context.Context, tag *model.Tag) error
	Delete(ctx context.Context, id uint) (*model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository builds a GORM-backed repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.WithContext(ctx).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByID(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByTitle(ctx context.Context, title string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository) Delete(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
