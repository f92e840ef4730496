package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the user is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates the request conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict")

// ErrExactTokenNotFound is returned when an organization has no stored Exact Online token.
var ErrExactTokenNotFound = errors.New("No Exact Online token found")

// ErrExactTokenRefresh is returned when the refresh-token grant against Exact Online fails.
var ErrExactTokenRefresh = errors.New("Failed to refresh Exact Online token")

// ErrExactNotConnected is returned by operations that need an Exact Online link the organization lacks.
var ErrExactNotConnected = errors.New("organization is not connected to Exact Online")

// ErrExactStateInvalid is returned when the OAuth state parameter cannot be verified.
var ErrExactStateInvalid = errors.New("invalid or expired Exact Online authorization state")

// ErrLockNotObtained is returned when a per-organization lock is held by someone else.
var ErrLockNotObtained = errors.New("another operation for this organization is in progress")

// AppError is an error carrying the HTTP status the handler layer should answer with.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with an HTTP status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationFailedError creates a 400 error that matches ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewConflictError creates a 409 error that matches ErrDuplicate.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

// NewNotFoundError creates a 404 error that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewForbiddenError creates a 403 error that matches ErrForbidden.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, Err: ErrForbidden}
}

// NewBadRequestError creates a 400 error.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// NewUnauthorizedError creates a 401 error that matches ErrUnauthorized.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, Err: ErrUnauthorized}
}

// NewInternalServerError creates a 500 error.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}

// ExactAPIError is a non-2xx answer from Exact Online. Body holds the raw response text.
type ExactAPIError struct {
	StatusCode int
	Body       string
	Endpoint   string
}

func (e *ExactAPIError) Error() string {
	return fmt.Sprintf("exact online %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// ExactStatusCode returns the upstream status of an Exact Online failure found anywhere in err's chain.
func ExactStatusCode(err error) (int, bool) {
	var apiErr *ExactAPIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}
