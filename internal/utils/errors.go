package utils

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidationError       ErrorCode = "VALIDATION_ERROR"
	ErrorCodeUpstreamFetchFailed   ErrorCode = "UPSTREAM_FETCH_FAILED"
	ErrorCodeNoMatchingFormat      ErrorCode = "NO_MATCHING_FORMAT"
	ErrorCodeIncompatibleContainer ErrorCode = "INCOMPATIBLE_CONTAINER"
	ErrorCodeDurationLimitExceeded ErrorCode = "DURATION_LIMIT_EXCEEDED"
	ErrorCodeInvalidContinuation   ErrorCode = "INVALID_CONTINUATION"
	ErrorCodeMuxerFailed           ErrorCode = "MUXER_FAILED"
	ErrorCodeSearchFailed          ErrorCode = "SEARCH_FAILED"
	ErrorCodeRateLimitExceeded     ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeInternalError         ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func NewErrorWithDetails(code ErrorCode, message string, statusCode int, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// NewValidationError reports malformed, missing or conflicting request
// parameters. fieldErrors maps parameter location ("query", "body", "params")
// to field name to message.
func NewValidationError(fieldErrors map[string]interface{}) *AppError {
	return NewErrorWithDetails(
		ErrorCodeValidationError,
		"Request validation failed",
		http.StatusBadRequest,
		map[string]interface{}{"errors": fieldErrors},
	)
}

func NewUpstreamFetchError(idOrURL string, err error) *AppError {
	return NewErrorWithDetails(
		ErrorCodeUpstreamFetchFailed,
		"Failed to get video info; did you mistakenly send a playlist link?",
		http.StatusBadRequest,
		map[string]interface{}{
			"idOrUrl": idOrURL,
			"cause":   err.Error(),
		},
	)
}

func NewNoMatchingFormatError() *AppError {
	return NewError(
		ErrorCodeNoMatchingFormat,
		"No formats found matching the requested parameters",
		http.StatusBadRequest,
	)
}

func NewIncompatibleContainerError(container string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeIncompatibleContainer,
		fmt.Sprintf("No formats available in container %q", container),
		http.StatusBadRequest,
		map[string]interface{}{"container": container},
	)
}

func NewDurationLimitError(durationSeconds, limitSeconds int64) *AppError {
	return NewErrorWithDetails(
		ErrorCodeDurationLimitExceeded,
		"Video too long",
		http.StatusBadRequest,
		map[string]interface{}{
			"lengthSeconds": durationSeconds,
			"limitSeconds":  limitSeconds,
		},
	)
}

func NewInvalidContinuationError() *AppError {
	return NewError(
		ErrorCodeInvalidContinuation,
		"Unknown or expired continuation; must be the object returned by /media/search",
		http.StatusBadRequest,
	)
}

func NewMuxerError() *AppError {
	return NewError(
		ErrorCodeMuxerFailed,
		"Muxing subprocess failed",
		http.StatusInternalServerError,
	)
}

func NewSearchError() *AppError {
	return NewError(
		ErrorCodeSearchFailed,
		"Search request failed",
		http.StatusInternalServerError,
	)
}

func NewRateLimitError() *AppError {
	return NewError(
		ErrorCodeRateLimitExceeded,
		"Too many requests",
		http.StatusTooManyRequests,
	)
}

func NewInternalError() *AppError {
	return NewError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}
