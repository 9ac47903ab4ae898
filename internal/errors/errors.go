package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidToken is returned when a bearer token is missing, malformed,
	// or rejected by the identity provider.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidCredentials is returned when the provider rejects a login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotSuperuser is returned when a privileged operation is attempted
	// by a caller whose profile role is not superuser.
	ErrNotSuperuser = errors.New("only superusers can perform this action")
	// ErrTaskNotFound is returned when the referenced task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNotTaskOwner is returned when a caller mutates a task assigned to someone else.
	ErrNotTaskOwner = errors.New("you can only update your own tasks")
	// ErrInvalidStatus is returned for status values or transitions the task
	// state machine does not allow.
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrUnsupportedImage is returned when uploaded bytes are not a PNG or JPEG.
	ErrUnsupportedImage = errors.New("file is not a recognized image")
	// ErrStorage is returned when an object storage call fails.
	ErrStorage = errors.New("storage operation failed")
	// ErrDatabase is returned when a table store call fails.
	ErrDatabase = errors.New("database operation failed")
	// ErrBadRequest is returned for semantically invalid input that passed binding.
	ErrBadRequest = errors.New("invalid request")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped platform errors
// keep their own message so the caller sees what the platform reported.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNotSuperuser):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_SUPERUSER")
	case errors.Is(err, ErrNotTaskOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_TASK_OWNER")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrUnsupportedImage):
		return NewHTTPError(http.StatusUnsupportedMediaType, err.Error(), "UNSUPPORTED_IMAGE")
	case errors.Is(err, ErrBadRequest):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BAD_REQUEST")
	case errors.Is(err, ErrStorage):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "STORAGE_ERROR")
	case errors.Is(err, ErrDatabase):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "DATABASE_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
}
