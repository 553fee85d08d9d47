// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAccountLocked = errors.New("account locked")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrTokenInvalid  = errors.New("token invalid")
)

type AppError struct {
	Err     error
	Message string
	Status  int
	Code    string
	Details []string
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

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Status:  status,
		Code:    code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func ValidationFailedError(details []string) *AppError {
	return &AppError{
		Err:     ErrInvalidInput,
		Message: "validation failed",
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Details: details,
	}
}

func BadRequestError(message string) *AppError {
	return NewAppError(
		ErrInvalidInput,
		message,
		http.StatusBadRequest,
		"BAD_REQUEST",
	)
}

func DuplicateError(field string) *AppError {
	return NewAppError(
		ErrDuplicateKey,
		fmt.Sprintf("%s already exists", field),
		http.StatusBadRequest,
		"DUPLICATE_KEY",
	)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		fmt.Sprintf("%s not found", resource),
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(
		ErrUnauthorized,
		message,
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "insufficient permissions"
	}
	return NewAppError(
		ErrForbidden,
		message,
		http.StatusForbidden,
		"FORBIDDEN",
	)
}

// AccountLockedError is the only credential failure surfaced distinctly:
// callers may retry after the lock window, so the response says when.
func AccountLockedError(lockedUntil time.Time) *AppError {
	return NewAppError(
		ErrAccountLocked,
		fmt.Sprintf(
			"account temporarily locked, try again after %s",
			lockedUntil.UTC().Format(time.RFC3339),
		),
		http.StatusLocked,
		"ACCOUNT_LOCKED",
	)
}

// Token error constructors keep distinct sentinels for logging but share
// one externally visible message so callers cannot distinguish expired,
// revoked, and malformed tokens.
const genericTokenMessage = "invalid or expired credentials"

func TokenExpiredError() *AppError {
	return NewAppError(
		ErrTokenExpired,
		genericTokenMessage,
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func TokenRevokedError() *AppError {
	return NewAppError(
		ErrTokenRevoked,
		genericTokenMessage,
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		genericTokenMessage,
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func InternalError(err error) *AppError {
	return NewAppError(
		err,
		"internal server error",
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
	)
}
