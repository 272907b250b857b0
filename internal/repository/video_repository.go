package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vidshelf/internal/model"
)

// VideoRepository defines video persistence operations.
type VideoRepository interface {
	List(ctx context.Context) ([]model.Video, error)
	FindByTitle(ctx context.Context, title string) (*model.Video, error)
	Create(ctx context.Context, video *model.Video) error
	CreateIfTitleAbsent(ctx context.Context, video *model.Video) (bool, error)
	Delete(ctx context.Context, id uint) (*model.Video, error)
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository builds a GORM-backed repository.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) List(ctx context.Context) ([]model.Video, error) {
	var videos []model.Video
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) FindByTitle(ctx context.Context, title string) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// CreateIfTitleAbsent inserts the video unless a record with the same title
// already exists. The unique index on title makes the lost half of a
// concurrent race a no-op instead of an error; the return value reports
// whether a row was actually written.
func (r *videoRepository) CreateIfTitleAbsent(ctx context.Context, video *model.Video) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "title"}},
		DoNothing: true,
	}).Create(video)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *videoRepository) Delete(ctx context.Context, id uint) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}
