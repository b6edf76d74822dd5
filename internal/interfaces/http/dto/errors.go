package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeConflict is used when the request duplicates an existing resource
	ErrCodeConflict = "ALREADY_EXISTS"
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall through to GetHTTPStatus's defaults.
var ErrorCodeHTTPStatus = map[string]int{
	// HTTP layer errors
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound: http.StatusNotFound,

	// Conflicts -> 409: the request raced another writer or duplicates
	// an existing resource
	"VERSION_CONFLICT":        http.StatusConflict,
	"DUPLICATE_CANCELLATION":  http.StatusConflict,
	"SCHEDULE_ALREADY_EXISTS": http.StatusConflict,
	"ALREADY_EXISTS":          http.StatusConflict,

	// Business rule violations -> 422: the request was well-formed but
	// the document cannot move that way
	"INVALID_STATE":     http.StatusUnprocessableEntity,
	"INVALID_DEDUCTION": http.StatusUnprocessableEntity,

	// Input errors -> 400
	"MISSING_REASON":            http.StatusBadRequest,
	"INVALID_INSTALLMENT_COUNT": http.StatusBadRequest,
	"INVALID_AMOUNT":            http.StatusBadRequest,
	"INVALID_USER":              http.StatusBadRequest,
	"INVALID_INPUT":             http.StatusBadRequest,

	// Rate limiting -> 429
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted INVALID_* codes are field validation failures and map to
// 400 Bad Request; anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") || strings.HasPrefix(code, "MISSING_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
