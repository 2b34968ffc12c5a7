package errors

import (
	"fmt"
	"net/http"
)

// Error kinds. Every failure that leaves the system is tagged with exactly
// one of these.
const (
	KindInvalidCredentials = "INVALID_CREDENTIALS"
	KindUnauthenticated    = "UNAUTHENTICATED"
	KindForbidden          = "FORBIDDEN"
	KindValidationFailed   = "VALIDATION_FAILED"
	KindConflict           = "CONFLICT"
	KindInvalidReference   = "INVALID_REFERENCE"
	KindNotFound           = "NOT_FOUND"
	KindInvalidToken       = "INVALID_TOKEN"
	KindTokenExpired       = "TOKEN_EXPIRED"
	KindServiceUnavailable = "SERVICE_UNAVAILABLE"
	KindInternal           = "INTERNAL"
)

// HttpError is the single error shape handlers are allowed to surface.
// Operational errors carry a user-safe Message; the wrapped cause is for
// server-side logs only.
type HttpError struct {
	Code        int
	Kind        string
	Message     string
	Err         error
	Details     map[string][]string
	Operational bool
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, kind, message string, err error) *HttpError {
	return &HttpError{Code: code, Kind: kind, Message: message, Err: err, Operational: true}
}

func NewValidationError(message string, details map[string][]string) *HttpError {
	return &HttpError{
		Code:        http.StatusBadRequest,
		Kind:        KindValidationFailed,
		Message:     message,
		Details:     details,
		Operational: true,
	}
}

func NewInternalError(err error) *HttpError {
	return &HttpError{
		Code:        http.StatusInternalServerError,
		Kind:        KindInternal,
		Message:     "Something went wrong",
		Err:         err,
		Operational: false,
	}
}

// Sentinel errors shared across the auth stack. Login failures deliberately
// collapse into one message so responses can not be used to enumerate
// accounts.
var (
	ErrInvalidCredentials = NewHttpError(http.StatusUnauthorized, KindInvalidCredentials, "Invalid email or password", nil)
	ErrEmptyAuthHeader    = NewHttpError(http.StatusUnauthorized, KindUnauthenticated, "Access token required", nil)
	ErrInvalidAuthHeader  = NewHttpError(http.StatusUnauthorized, KindUnauthenticated, "Access token required", nil)
	ErrUnauthenticated    = NewHttpError(http.StatusUnauthorized, KindUnauthenticated, "Invalid token", nil)
	ErrForbidden          = NewHttpError(http.StatusForbidden, KindForbidden, "Insufficient permissions", nil)
	ErrTokenRejected      = NewHttpError(http.StatusForbidden, KindForbidden, "Invalid token", nil)
	ErrInvalidToken       = NewHttpError(http.StatusUnauthorized, KindInvalidToken, "Invalid token", nil)
	ErrTokenExpired       = NewHttpError(http.StatusUnauthorized, KindTokenExpired, "Token expired", nil)
	ErrNotFound           = NewHttpError(http.StatusNotFound, KindNotFound, "Record not found", nil)
	ErrUserNotFound       = NewHttpError(http.StatusNotFound, KindNotFound, "User not found or inactive", nil)
	ErrBadRequest         = NewHttpError(http.StatusBadRequest, KindValidationFailed, "Invalid request payload", nil)
	ErrRouteNotFound      = NewHttpError(http.StatusNotFound, KindNotFound, "Route not found", nil)
)
