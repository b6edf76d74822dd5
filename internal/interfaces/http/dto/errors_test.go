package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found", "NOT_FOUND", http.StatusNotFound},
		{"forbidden", "FORBIDDEN", http.StatusForbidden},
		{"unauthorized", "UNAUTHORIZED", http.StatusUnauthorized},
		{"version conflict", "VERSION_CONFLICT", http.StatusConflict},
		{"duplicate cancellation", "DUPLICATE_CANCELLATION", http.StatusConflict},
		{"schedule already exists", "SCHEDULE_ALREADY_EXISTS", http.StatusConflict},
		{"invalid state", "INVALID_STATE", http.StatusUnprocessableEntity},
		{"invalid deduction", "INVALID_DEDUCTION", http.StatusUnprocessableEntity},
		{"missing reason", "MISSING_REASON", http.StatusBadRequest},
		{"invalid installment count", "INVALID_INSTALLMENT_COUNT", http.StatusBadRequest},
		{"unlisted invalid code", "INVALID_SALE_NUMBER", http.StatusBadRequest},
		{"unlisted missing code", "MISSING_SOMETHING", http.StatusBadRequest},
		{"unknown code", "SOMETHING_ODD", http.StatusInternalServerError},
		{"internal error", ErrCodeInternal, http.StatusInternalServerError},
		{"rate limited", ErrCodeRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("NOT_FOUND", "Sale not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Sale not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Nil(t, resp.Data)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "amount", Message: "must be positive"},
		{Field: "sale_id", Message: "is required"},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-456", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "amount", resp.Error.Details[0].Field)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
