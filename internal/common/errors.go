package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Error classes. Every error returned by services wraps exactly one of these.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("conflict")
	ErrSerialization = errors.New("serialization failed")
	ErrStorage       = errors.New("storage failure")
)

// Work errors
var (
	ErrWorkNotFound = fmt.Errorf("work: %w", ErrNotFound)
	ErrNotWorkOwner = fmt.Errorf("work owner mismatch: %w", ErrForbidden)
	ErrPrivateWork  = fmt.Errorf("work is private: %w", ErrForbidden)
)

// Template errors
var (
	ErrTemplateNotFound = fmt.Errorf("template: %w", ErrNotFound)
	ErrNotTemplateOwner = fmt.Errorf("template owner mismatch: %w", ErrForbidden)
)

// Version errors
var (
	ErrVersionNotFound = fmt.Errorf("version: %w", ErrNotFound)
	ErrVersionConflict = fmt.Errorf("version number already taken: %w", ErrConflict)
)

// Comment errors
var (
	ErrCommentNotFound = fmt.Errorf("comment: %w", ErrNotFound)
	ErrEmptyComment    = fmt.Errorf("comment content is empty: %w", ErrValidation)
	ErrNotCommentOwner = fmt.Errorf("comment owner mismatch: %w", ErrForbidden)
)

// Auth errors
var (
	ErrUserNotFound       = fmt.Errorf("user: %w", ErrNotFound)
	ErrUserAlreadyExists  = fmt.Errorf("email already registered: %w", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("invalid token: %w", ErrUnauthorized)
	ErrExpiredToken       = fmt.Errorf("token expired: %w", ErrUnauthorized)
)

// Autosave errors
var (
	ErrInvalidAutosaveKind = fmt.Errorf("unknown autosave kind: %w", ErrValidation)
	ErrStorageUnavailable  = fmt.Errorf("object storage not configured: %w", ErrStorage)
)

// Error kinds exposed to clients
const (
	KindUnauthorized = "unauthorized"
	KindNotFound     = "not-found"
	KindForbidden    = "forbidden"
	KindValidation   = "validation"
	KindConflict     = "conflict"
	KindRateLimited  = "rate-limited"
	KindServerError  = "server-error"
)

// Classify maps an error to its HTTP status and coarse kind.
// Anything outside the taxonomy (including ErrStorage and ErrSerialization) is a server error.
func Classify(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, KindUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, KindForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, KindValidation
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, KindConflict
	default:
		return http.StatusInternalServerError, KindServerError
	}
}

// Storage wraps a backing-store error so it classifies as ErrStorage
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// Validation builds a validation error with a reason
func Validation(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrValidation)
}
