package errors

import (
	"errors"
	"net/http"
)

// Error kinds. Every domain failure wraps exactly one of them.
var (
	// ErrInvalidInput is returned when required fields are missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthenticated is returned when a credential is missing, invalid or expired.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden is returned when the caller is neither owner nor admin.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when an id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredential is returned when a supplied password does not match.
	ErrInvalidCredential = errors.New("invalid credential")
)

// Error carries a kind and the message shown to the client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match the kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// New creates an error of the given kind with a client-facing message.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// InvalidInput is shorthand for New(ErrInvalidInput, message).
func InvalidInput(message string) *Error { return New(ErrInvalidInput, message) }

// Unauthenticated is shorthand for New(ErrUnauthenticated, message).
func Unauthenticated(message string) *Error { return New(ErrUnauthenticated, message) }

// Forbidden is shorthand for New(ErrForbidden, message).
func Forbidden(message string) *Error { return New(ErrForbidden, message) }

// NotFound is shorthand for New(ErrNotFound, message).
func NotFound(message string) *Error { return New(ErrNotFound, message) }

// InvalidCredential is shorthand for New(ErrInvalidCredential, message).
func InvalidCredential(message string) *Error { return New(ErrInvalidCredential, message) }

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
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
		Success: false,
		Message: e.Message,
		Code:    e.Code,
	}
}

// InternalMessage is the only text a client sees for unexpected failures.
const InternalMessage = "internal server error"

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	message := InternalMessage
	var domainErr *Error
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, messageOr(message, err), "INVALID_INPUT")
	case errors.Is(err, ErrInvalidCredential):
		return NewHTTPError(http.StatusBadRequest, messageOr(message, err), "INVALID_CREDENTIAL")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, messageOr(message, err), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, messageOr(message, err), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, messageOr(message, err), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, InternalMessage, "INTERNAL_ERROR")
	}
}

// messageOr keeps the domain message, falling back to the bare kind text when
// the kind was returned without a wrapper.
func messageOr(message string, err error) string {
	if message != InternalMessage {
		return message
	}
	return err.Error()
}
