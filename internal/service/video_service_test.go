package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "vidshelf/internal/errors"
	"vidshelf/internal/model"
)

// memoryVideoCache implements VideoCache over a map, marshaling the same way
// the redis-backed client does.
type memoryVideoCache struct {
	entries map[string][]byte
}

func newMemoryVideoCache() *memoryVideoCache {
	return &memoryVideoCache{entries: map[string][]byte{}}
}

func (c *memoryVideoCache) GetJSON(ctx context.Context, key string, dest any) bool {
	data, ok := c.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (c *memoryVideoCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *memoryVideoCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

// MockVideoRepository is a mock implementation of repository.VideoRepository.
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) List(ctx context.Context) ([]model.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Video), args.Error(1)
}

func (m *MockVideoRepository) FindByTitle(ctx context.Context, title string) (*model.Video, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) CreateIfTitleAbsent(ctx context.Context, video *model.Video) (bool, error) {
	args := m.Called(ctx, video)
	return args.Bool(0), args.Error(1)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id uint) (*model.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func TestVideoService_ListVideos(t *testing.T) {
	mockRepo := new(MockVideoRepository)
	mockRepo.On("List", mock.Anything).Return([]model.Video{
		{ID: 1, Title: "clip.mp4", Tags: "a,b,c"},
	}, nil)

	svc := NewVideoService(mockRepo, nil)
	videos, err := svc.ListVideos(context.Background())

	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, []string{"a", "b", "c"}, videos[0].TagList())
}

func TestVideoService_ListVideos_CacheHitKeepsTags(t *testing.T) {
	mockRepo := new(MockVideoRepository)
	mockRepo.On("List", mock.Anything).Return([]model.Video{
		{ID: 1, Title: "clip.mp4", Tags: "a,b,c", Category: "movies"},
	}, nil).Once()

	svc := NewVideoService(mockRepo, newMemoryVideoCache())

	// First call warms the cache from the repository.
	warm, err := svc.ListVideos(context.Background())
	require.NoError(t, err)
	require.Len(t, warm, 1)

	// Second call is served from the cache and must not lose the tags.
	cached, err := svc.ListVideos(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "clip.mp4", cached[0].Title)
	assert.Equal(t, "movies", cached[0].Category)
	assert.Equal(t, []string{"a", "b", "c"}, cached[0].TagList())

	mockRepo.AssertNumberOfCalls(t, "List", 1)
}

func TestVideoService_CreateVideo_InvalidatesCachedList(t *testing.T) {
	mockRepo := new(MockVideoRepository)
	mockRepo.On("List", mock.Anything).Return([]model.Video{
		{ID: 1, Title: "clip.mp4"},
	}, nil).Twice()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Video")).Return(nil)

	svc := NewVideoService(mockRepo, newMemoryVideoCache())

	_, err := svc.ListVideos(context.Background())
	require.NoError(t, err)

	_, err = svc.CreateVideo(context.Background(), &model.Video{Title: "new.mp4"})
	require.NoError(t, err)

	// The create dropped the cached list, so the next read goes to the store.
	_, err = svc.ListVideos(context.Background())
	require.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "List", 2)
}

func TestVideoService_CreateVideo_DuplicateTitle(t *testing.T) {
	mockRepo := new(MockVideoRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Video")).Return(gorm.ErrDuplicatedKey)

	svc := NewVideoService(mockRepo, nil)
	video, err := svc.CreateVideo(context.Background(), &model.Video{Title: "clip.mp4"})

	assert.ErrorIs(t, err, apperrors.ErrVideoTitleTaken)
	assert.Nil(t, video)
}

func TestVideoService_DeleteVideo_NotFound(t *testing.T) {
	mockRepo := new(MockVideoRepository)
	mockRepo.On("Delete", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewVideoService(mockRepo, nil)
	video, err := svc.DeleteVideo(context.Background(), 9)

	assert.ErrorIs(t, err, apperrors.ErrVideoNotFound)
	assert.Nil(t, video)
}
