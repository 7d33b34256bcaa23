package common

import (
	"errors"
	"net/http"

	"github.com/cardnews/cardnews-backend/pkg/i18n"
	"github.com/cardnews/cardnews-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// LocaleKey is the gin context key holding the request locale
const LocaleKey = "locale"

// APIResponse standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// Meta pagination metadata
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ErrorInfo error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewMeta creates Meta with computed total pages
func NewMeta(page, limit int, total int64) *Meta {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = total / int64(limit)
		if total%int64(limit) > 0 {
			totalPages++
		}
	}
	return &Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// SuccessResponse returns a successful JSON response
func SuccessResponse(c *gin.Context, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// CreatedResponse returns a 201 Created response
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

// ErrorResponse returns an error JSON response
func ErrorResponse(c *gin.Context, status int, message string, err error) {
	errInfo := &ErrorInfo{
		Code:    getErrorCode(status),
		Kind:    kindForStatus(status),
		Message: message,
	}
	if err != nil && status < http.StatusInternalServerError {
		errInfo.Details = err.Error()
	}

	c.JSON(status, APIResponse{
		Success: false,
		Error:   errInfo,
	})
}

// HandleError classifies err, localizes its message and writes the error response.
// Server errors are logged with the request id; their details never reach the client.
func HandleError(c *gin.Context, err error) {
	status, _ := Classify(err)
	if status >= http.StatusInternalServerError {
		l := logger.WithRequestID(c.GetString("request_id"))
		l.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}
	ErrorResponse(c, status, i18n.Default().T(requestLocale(c), MessageKey(err)), err)
}

// AbortWithError is HandleError for middleware
func AbortWithError(c *gin.Context, err error) {
	HandleError(c, err)
	c.Abort()
}

// MessageKey returns the i18n key describing err
func MessageKey(err error) string {
	specific := []struct {
		target error
		key    string
	}{
		{ErrWorkNotFound, "work.not_found"},
		{ErrNotWorkOwner, "work.not_owner"},
		{ErrPrivateWork, "work.private"},
		{ErrTemplateNotFound, "template.not_found"},
		{ErrNotTemplateOwner, "template.not_owner"},
		{ErrVersionNotFound, "version.not_found"},
		{ErrVersionConflict, "version.conflict"},
		{ErrCommentNotFound, "comment.not_found"},
		{ErrEmptyComment, "comment.empty"},
		{ErrNotCommentOwner, "comment.not_owner"},
		{ErrUserNotFound, "auth.user_not_found"},
		{ErrUserAlreadyExists, "auth.duplicate_email"},
		{ErrInvalidCredentials, "auth.login_failed"},
		{ErrInvalidToken, "auth.token_invalid"},
		{ErrExpiredToken, "auth.token_expired"},
		{ErrInvalidAutosaveKind, "autosave.invalid_kind"},
	}
	for _, s := range specific {
		if errors.Is(err, s.target) {
			return s.key
		}
	}

	switch _, kind := Classify(err); kind {
	case KindUnauthorized:
		return "error.unauthorized"
	case KindNotFound:
		return "error.not_found"
	case KindForbidden:
		return "error.forbidden"
	case KindValidation:
		return "error.validation"
	case KindConflict:
		return "error.conflict"
	default:
		return "error.internal"
	}
}

// Localize translates key into the request locale
func Localize(c *gin.Context, key string, args ...interface{}) string {
	return i18n.Default().T(requestLocale(c), key, args...)
}

func requestLocale(c *gin.Context) i18n.Locale {
	if v, ok := c.Get(LocaleKey); ok {
		if locale, ok := v.(i18n.Locale); ok {
			return locale
		}
	}
	return i18n.LocaleKo
}

// getErrorCode generates error code from HTTP status
func getErrorCode(status int) string {
	switch status {
	case 400:
		return "BAD_REQUEST"
	case 401:
		return "UNAUTHORIZED"
	case 403:
		return "FORBIDDEN"
	case 404:
		return "NOT_FOUND"
	case 409:
		return "CONFLICT"
	case 429:
		return "RATE_LIMITED"
	case 500:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "ERROR"
	}
}

func kindForStatus(status int) string {
	switch status {
	case 400:
		return KindValidation
	case 401:
		return KindUnauthorized
	case 403:
		return KindForbidden
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	case 429:
		return KindRateLimited
	default:
		return KindServerError
	}
}
