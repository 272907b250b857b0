package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vidshelf/internal/auth"
	"vidshelf/internal/errors"
	"vidshelf/internal/model"
	"vidshelf/internal/service"
)

// TagHandler handles tag endpoints.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// TagRequest represents a tag create or update request.
type TagRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// TagResponse is the external shape of a tag.
type TagResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateTagResponse carries the public fields of a freshly created tag.
type CreateTagResponse struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
}

func toTagResponse(t *model.Tag) TagResponse {
	return TagResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
	}
}

// ListTags godoc
// @Summary List all tags
// @Tags tags
// @Produce json
// @Success 200 {array} TagResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tags [get]
func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.tagService.ListTags(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, toTagResponse(&tags[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TagRequest true "Tag data"
// @Success 201 {object} CreateTagResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tag [post]
func (h *TagHandler) CreateTag(c echo.Context) error {
	claims, ok := auth.CurrentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHENTICATED",
		})
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.CreateTag(c.Request().Context(), req.Title, req.Description, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, CreateTagResponse{
		ID:          tag.ID,
		Description: tag.Description,
	})
}

// UpdateTag godoc
// @Summary Update a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param request body TagRequest true "Tag data"
// @Success 200 {object} TagResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tag/{id} [post]
func (h *TagHandler) UpdateTag(c echo.Context) error {
	claims, ok := auth.CurrentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHENTICATED",
		})
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "id must be numeric",
			Code:  "INVALID_ID",
		})
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.UpdateTag(c.Request().Context(), uint(id), req.Title, req.Description, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toTagResponse(tag))
}

// DeleteTag godoc
// @Summary Delete a tag
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} TagResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tag/{id} [delete]
func (h *TagHandler) DeleteTag(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "id must be numeric",
			Code:  "INVALID_ID",
		})
	}

	tag, err := h.tagService.DeleteTag(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toTagResponse(tag))
}
