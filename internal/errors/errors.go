package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering with an existing username.
	ErrUsernameTaken = errors.New("username already in use")
	// ErrInvalidRole is returned when a request names a role outside the enumeration.
	ErrInvalidRole = errors.New("invalid role")
	// ErrTagTitleTaken is returned when a tag with the same title already exists.
	ErrTagTitleTaken = errors.New("tag title already in use")
	// ErrVideoTitleTaken is returned when a video with the same title already exists.
	ErrVideoTitleTaken = errors.New("video title already in use")
	// ErrVideoNotFound is returned when a video is not found.
	ErrVideoNotFound = errors.New("video not found")
	// ErrTagNotFound is returned when a tag is not found.
	ErrTagNotFound = errors.New("tag not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrSuperadminProtected is returned when attempting to delete a superadmin account.
	ErrSuperadminProtected = errors.New("superadmin accounts cannot be deleted")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrTagTitleTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "TAG_TITLE_TAKEN")
	case errors.Is(err, ErrVideoTitleTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "VIDEO_TITLE_TAKEN")
	case errors.Is(err, ErrVideoNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "VIDEO_NOT_FOUND")
	case errors.Is(err, ErrTagNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TAG_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrSuperadminProtected):
		return NewHTTPError(http.StatusForbidden, err.Error(), "SUPERADMIN_PROTECTED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
