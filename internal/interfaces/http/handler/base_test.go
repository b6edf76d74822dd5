package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/interfaces/http/dto"
	"github.com/estatebooks/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setJWTContext sets JWT context values for testing
// This simulates authenticated requests without actual JWT tokens
func setJWTContext(c *gin.Context, userID uuid.UUID, role approval.Role) {
	c.Set(middleware.JWTUserIDKey, userID.String())
	c.Set(middleware.JWTRoleKey, string(role))
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context string",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set(RequestIDKey, "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-id")
				c.Request.Header.Set(RequestIDKey, "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			tt.setup(c)

			id := getRequestID(c)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestGetUserID(t *testing.T) {
	t.Run("returns parsed UUID from claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		expected := uuid.New()
		setJWTContext(c, expected, approval.RoleAccountManager)

		id, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, expected, id)
	})

	t.Run("errors when claims missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Success(c, gin.H{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
}

func TestBaseHandlerErrors(t *testing.T) {
	tests := []struct {
		name         string
		invoke       func(h *BaseHandler, c *gin.Context)
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "bad request",
			invoke:       func(h *BaseHandler, c *gin.Context) { h.BadRequest(c, "bad input") },
			expectedCode: http.StatusBadRequest,
			expectedErr:  dto.ErrCodeBadRequest,
		},
		{
			name:         "not found",
			invoke:       func(h *BaseHandler, c *gin.Context) { h.NotFound(c, "missing") },
			expectedCode: http.StatusNotFound,
			expectedErr:  dto.ErrCodeNotFound,
		},
		{
			name:         "unauthorized",
			invoke:       func(h *BaseHandler, c *gin.Context) { h.Unauthorized(c, "no token") },
			expectedCode: http.StatusUnauthorized,
			expectedErr:  dto.ErrCodeUnauthorized,
		},
		{
			name:         "forbidden",
			invoke:       func(h *BaseHandler, c *gin.Context) { h.Forbidden(c, "wrong role") },
			expectedCode: http.StatusForbidden,
			expectedErr:  dto.ErrCodeForbidden,
		},
		{
			name:         "conflict",
			invoke:       func(h *BaseHandler, c *gin.Context) { h.Conflict(c, "duplicate") },
			expectedCode: http.StatusConflict,
			expectedErr:  dto.ErrCodeConflict,
		},
		{
			name:         "internal error",
			invoke:       func(h *BaseHandler, c *gin.Context) { h.InternalError(c, "boom") },
			expectedCode: http.StatusInternalServerError,
			expectedErr:  dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			tt.invoke(h, c)

			assert.Equal(t, tt.expectedCode, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
		})
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "version conflict maps to 409",
			err:          shared.ErrConcurrencyConflict,
			expectedCode: http.StatusConflict,
			expectedErr:  "VERSION_CONFLICT",
		},
		{
			name:         "invalid state maps to 422",
			err:          shared.NewDomainError("INVALID_STATE", "document is not editable"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  "INVALID_STATE",
		},
		{
			name:         "missing reason maps to 400",
			err:          shared.NewDomainError("MISSING_REASON", "remarks are required"),
			expectedCode: http.StatusBadRequest,
			expectedErr:  "MISSING_REASON",
		},
		{
			name:         "opaque error maps to 500",
			err:          assert.AnError,
			expectedCode: http.StatusInternalServerError,
			expectedErr:  dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
		})
	}
}

func TestBindDecision(t *testing.T) {
	docID := uuid.New()
	actorID := uuid.New()

	newDecisionContext := func(body string) (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest("POST", "/", nil)
		} else {
			req = httptest.NewRequest("POST", "/", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: docID.String()}}
		return c, w
	}

	t.Run("binds id, actor, role and remarks", func(t *testing.T) {
		h := &BaseHandler{}
		c, _ := newDecisionContext(`{"remarks":"looks fine"}`)
		setJWTContext(c, actorID, approval.RoleHOF)

		id, userID, role, req, ok := h.bindDecision(c)
		require.True(t, ok)
		assert.Equal(t, docID, id)
		assert.Equal(t, actorID, userID)
		assert.Equal(t, approval.RoleHOF, role)
		assert.Equal(t, "looks fine", req.Remarks)
	})

	t.Run("empty body is accepted", func(t *testing.T) {
		h := &BaseHandler{}
		c, _ := newDecisionContext("")
		setJWTContext(c, actorID, approval.RoleAccountManager)

		_, _, _, req, ok := h.bindDecision(c)
		require.True(t, ok)
		assert.Empty(t, req.Remarks)
	})

	t.Run("rejects malformed document ID", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newDecisionContext("")
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
		setJWTContext(c, actorID, approval.RoleAccountManager)

		_, _, _, _, ok := h.bindDecision(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects unauthenticated request", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newDecisionContext("")

		_, _, _, _, ok := h.bindDecision(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
