package errors

import (
	"fmt"
	"time"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeConflict        ErrorCode = "CONFLICT"
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"

	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserBanned   ErrorCode = "USER_BANNED"

	ErrCodeSpotNotFound  ErrorCode = "SPOT_NOT_FOUND"
	ErrCodeMediaNotFound ErrorCode = "MEDIA_NOT_FOUND"
	ErrCodeNotOwner      ErrorCode = "NOT_OWNER"

	ErrCodeContestNotFound  ErrorCode = "CONTEST_NOT_FOUND"
	ErrCodeContestClosed    ErrorCode = "CONTEST_CLOSED"
	ErrCodeNotEligible      ErrorCode = "NOT_ELIGIBLE"
	ErrCodeEntryLimit       ErrorCode = "ENTRY_LIMIT_REACHED"
	ErrCodeAlreadySubmitted ErrorCode = "ALREADY_SUBMITTED"
	ErrCodeAlreadyVoted     ErrorCode = "ALREADY_VOTED"

	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrCodeCacheError    ErrorCode = "CACHE_ERROR"
)

// AppError is a typed application error carried through handlers to the
// error middleware, which maps it onto an HTTP status.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) IsNotFound() bool {
	switch e.Code {
	case ErrCodeNotFound, ErrCodeUserNotFound, ErrCodeSpotNotFound,
		ErrCodeMediaNotFound, ErrCodeContestNotFound:
		return true
	}
	return false
}

func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeBadRequest
}

func (e *AppError) IsUnauthorized() bool {
	return e.Code == ErrCodeUnauthorized || e.Code == ErrCodeForbidden
}

func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal || e.Code == ErrCodeDatabaseError || e.Code == ErrCodeCacheError
}

// WithDetail attaches extra structured information to the error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

func NewSpotNotFoundError(spotID string) *AppError {
	return New(ErrCodeSpotNotFound, fmt.Sprintf("Spot not found: %s", spotID)).
		WithDetail("spot_id", spotID)
}

func NewContestNotFoundError(contestID string) *AppError {
	return New(ErrCodeContestNotFound, fmt.Sprintf("Contest not found: %s", contestID)).
		WithDetail("contest_id", contestID)
}

func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("Unauthorized: %s", reason)).
		WithDetail("reason", reason)
}

func NewForbiddenError(reason string) *AppError {
	return New(ErrCodeForbidden, fmt.Sprintf("Forbidden: %s", reason)).
		WithDetail("reason", reason)
}

func NewDatabaseError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDatabaseError, fmt.Sprintf("Database operation failed: %s", operation)).
		WithDetail("operation", operation)
}

func NewNotEligibleError(reason string) *AppError {
	return New(ErrCodeNotEligible, fmt.Sprintf("Submission not eligible: %s", reason)).
		WithDetail("reason", reason)
}

// AsAppError converts err to *AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
