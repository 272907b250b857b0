package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "vidshelf/internal/errors"
	"vidshelf/internal/model"
	"vidshelf/internal/repository"
)

const (
	videoListCacheKey = "videos:list"
	videoListCacheTTL = time.Minute
)

// VideoCache is the slice of the cache the video service needs.
// cache.Client satisfies it.
type VideoCache interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// VideoService exposes catalog operations on videos.
type VideoService interface {
	ListVideos(ctx context.Context) ([]model.Video, error)
	CreateVideo(ctx context.Context, video *model.Video) (*model.Video, error)
	DeleteVideo(ctx context.Context, id uint) (*model.Video, error)
}

type videoService struct {
	repo  repository.VideoRepository
	cache VideoCache
}

// NewVideoService builds a VideoService with repository and cache. A nil
// cache disables caching.
func NewVideoService(repo repository.VideoRepository, cache VideoCache) VideoService {
	return &videoService{repo: repo, cache: cache}
}

// cachedVideo restores the tags column in the cached payload. The model hides
// it from JSON so API responses can expand tags into an array; a round trip
// through the model's own marshaling would lose them.
type cachedVideo struct {
	model.Video
	Tags string `json:"tags"`
}

func (s *videoService) ListVideos(ctx context.Context) ([]model.Video, error) {
	if s.cache != nil {
		var cached []cachedVideo
		if s.cache.GetJSON(ctx, videoListCacheKey, &cached) {
			videos := make([]model.Video, len(cached))
			for i, cv := range cached {
				videos[i] = cv.Video
				videos[i].Tags = cv.Tags
			}
			return videos, nil
		}
	}

	videos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		entries := make([]cachedVideo, len(videos))
		for i, v := range videos {
			entries[i] = cachedVideo{Video: v, Tags: v.Tags}
		}
		_ = s.cache.SetJSON(ctx, videoListCacheKey, entries, videoListCacheTTL)
	}
	return videos, nil
}

func (s *videoService) CreateVideo(ctx context.Context, video *model.Video) (*model.Video, error) {
	if err := s.repo.Create(ctx, video); err != nil {
		// A duplicate here means the ingestion watcher (or another upload)
		// already cataloged a file with the same title.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrVideoTitleTaken
		}
		return nil, fmt.Errorf("create video: %w", err)
	}
	s.invalidateList(ctx)
	return video, nil
}

func (s *videoService) DeleteVideo(ctx context.Context, id uint) (*model.Video, error) {
	video, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVideoNotFound
		}
		return nil, fmt.Errorf("delete video: %w", err)
	}
	s.invalidateList(ctx)
	return video, nil
}

func (s *videoService) invalidateList(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, videoListCacheKey)
	}
}
