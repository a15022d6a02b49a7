package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewInvalidWindow marks a malformed half-open time range. Caller bug, never retried.
func NewInvalidWindow(message string, details map[string]any) error {
	return NewDomainError("INVALID_WINDOW", message, http.StatusBadRequest, details)
}

// NewConflict reports a staff member unavailable for a window.
func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewRoleFull(role string, details map[string]any) error {
	return NewDomainError("ROLE_FULL", fmt.Sprintf("role %s has no open slots", role), http.StatusConflict, details)
}

func NewDuplicateAssignment(details map[string]any) error {
	return NewDomainError("DUPLICATE_ASSIGNMENT", "staff already assigned to this role", http.StatusConflict, details)
}

func NewNotApproved(details map[string]any) error {
	return NewDomainError("NOT_APPROVED", "assignment is not approved", http.StatusConflict, details)
}

// NewContention is surfaced after the optimistic-commit retry budget is exhausted.
func NewContention(details map[string]any) error {
	return NewDomainError("CONTENTION", "concurrent update contention", http.StatusConflict, details)
}

// NewStorageUnavailable wraps transient storage failures; the calling layer retries.
func NewStorageUnavailable(err error) error {
	return &DomainError{
		Code:       "STORAGE_UNAVAILABLE",
		Message:    "storage temporarily unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
