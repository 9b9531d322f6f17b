package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for an unknown email and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrStorageUnavailable is returned when the database or session store fails.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrSessionNotFound is returned when no active session record backs the request.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when the session record is past its expiry.
	ErrSessionExpired = errors.New("session expired")
	// ErrUnauthorized is returned when the user's role is insufficient.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrComputerNotFound is returned when a computer is not found.
	ErrComputerNotFound = errors.New("computer not found")
	// ErrInvalidCommand is returned when a submitted command is empty.
	ErrInvalidCommand = errors.New("invalid command")
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
// Storage failures never carry their detail to the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionExpired):
		return NewHTTPError(http.StatusUnauthorized, ErrSessionExpired.Error(), "SESSION_EXPIRED")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusForbidden, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrComputerNotFound):
		return NewHTTPError(http.StatusNotFound, ErrComputerNotFound.Error(), "COMPUTER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCommand):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCommand.Error(), "INVALID_COMMAND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
