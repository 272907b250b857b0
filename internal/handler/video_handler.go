package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"vidshelf/internal/auth"
	"vidshelf/internal/errors"
	"vidshelf/internal/model"
	"vidshelf/internal/service"
	"vidshelf/internal/storage"
)

// VideoHandler handles video endpoints.
type VideoHandler struct {
	videoService service.VideoService
	sink         *storage.Sink
}

// NewVideoHandler creates a new video handler.
func NewVideoHandler(videoService service.VideoService, sink *storage.Sink) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		sink:         sink,
	}
}

// VideoResponse is the external shape of a video: tags are always an ordered
// array, never the stored comma-joined string and never null.
type VideoResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Category    string     `json:"category"`
	Date        *time.Time `json:"date,omitempty"`
	UserID      *uint      `json:"user_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID,
		Title:       v.Title,
		URL:         v.URL,
		Thumbnail:   v.Thumbnail,
		Description: v.Description,
		Tags:        v.TagList(),
		Category:    v.Category,
		Date:        v.Date,
		UserID:      v.UserID,
		CreatedAt:   v.CreatedAt,
	}
}

// ListVideos godoc
// @Summary List all videos
// @Tags videos
// @Produce json
// @Success 200 {array} VideoResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /videos [get]
func (h *VideoHandler) ListVideos(c echo.Context) error {
	videos, err := h.videoService.ListVideos(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	out := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		out = append(out, toVideoResponse(&videos[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateVideo godoc
// @Summary Upload a video
// @Tags videos
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param tags formData string true "Comma-joined tags"
// @Param date formData string false "RFC3339 date"
// @Param file formData file false "Video file"
// @Param thumbnail formData file false "Thumbnail image"
// @Success 200 {object} VideoResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /videos [post]
func (h *VideoHandler) CreateVideo(c echo.Context) error {
	claims, ok := auth.CurrentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHENTICATED",
		})
	}

	title := c.FormValue("title")
	description := c.FormValue("description")
	tags := c.FormValue("tags")
	if title == "" || description == "" || tags == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "title, description and tags are required",
			Code:  "MISSING_FIELDS",
		})
	}

	var date *time.Time
	if raw := c.FormValue("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "date must be RFC3339",
				Code:  "INVALID_DATE",
			})
		}
		date = &parsed
	}

	// Both files are durably persisted before any record references them.
	var videoPath, thumbnailPath string
	if fh, err := c.FormFile("file"); err == nil {
		if videoPath, err = h.sink.Save(fh); err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}
	if fh, err := c.FormFile("thumbnail"); err == nil {
		if thumbnailPath, err = h.sink.Save(fh); err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}

	userID := claims.UserID
	video := &model.Video{
		Title:       title,
		Description: description,
		Tags:        tags,
		URL:         videoPath,
		Thumbnail:   thumbnailPath,
		Date:        date,
		UserID:      &userID,
	}

	created, err := h.videoService.CreateVideo(c.Request().Context(), video)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toVideoResponse(created))
}

// DeleteVideo godoc
// @Summary Delete a video
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} VideoResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "id must be numeric",
			Code:  "INVALID_ID",
		})
	}

	deleted, err := h.videoService.DeleteVideo(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toVideoResponse(deleted))
}
