package errors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppErrorStatus(t *testing.T) {
	t.Run("Should classify 4xx as fail", func(t *testing.T) {
		assert.Equal(t, "fail", NewBadRequest("nope").Status())
		assert.Equal(t, "fail", NewUnauthorized("nope").Status())
		assert.Equal(t, "fail", NewForbidden("nope").Status())
		assert.Equal(t, "fail", NewNotFound("nope").Status())
		assert.Equal(t, "fail", NewTooManyRequests("nope").Status())
	})

	t.Run("Should classify non-4xx as error", func(t *testing.T) {
		assert.Equal(t, "error", NewInternal("boom").Status())
		assert.Equal(t, "error", NewServiceUnavailable("slow").Status())
	})
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"bad request", NewBadRequest("m"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("m"), http.StatusUnauthorized},
		{"forbidden", NewForbidden("m"), http.StatusForbidden},
		{"not found", NewNotFound("m"), http.StatusNotFound},
		{"payload too large", NewPayloadTooLarge("m"), http.StatusRequestEntityTooLarge},
		{"too many requests", NewTooManyRequests("m"), http.StatusTooManyRequests},
		{"internal", NewInternal("m"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.StatusCode)
			assert.Equal(t, "m", tc.err.Message)
			assert.NotEmpty(t, tc.err.StackTrace)
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("Should return nil for nil error", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("Should preserve AppError classification", func(t *testing.T) {
		wrapped := Wrap(NewNotFound("item missing"), "lookup")

		appErr := GetAppError(wrapped)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
		assert.Equal(t, "lookup: item missing", appErr.Message)
	})

	t.Run("Should convert unknown errors to internal", func(t *testing.T) {
		cause := errors.New("disk on fire")
		wrapped := Wrap(cause, "lookup")

		appErr := GetAppError(wrapped)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
		assert.ErrorIs(t, wrapped, cause)
	})
}

func TestHandler(t *testing.T) {
	t.Run("Should write the error envelope", func(t *testing.T) {
		h := NewHandler(zap.NewNop(), false)
		req := httptest.NewRequest("GET", "/api/items/nope", nil)
		w := httptest.NewRecorder()

		h.Handle(w, req, NewNotFound("Memory item with ID nope not found"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "fail", body.Status)
		assert.Contains(t, body.Message, "nope")
		assert.Empty(t, body.Stack)
	})

	t.Run("Should include stack only in debug mode", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)

		w := httptest.NewRecorder()
		NewHandler(zap.NewNop(), true).Handle(w, req, NewInternal("boom"))
		var debugBody ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &debugBody))
		assert.NotEmpty(t, debugBody.Stack)

		w = httptest.NewRecorder()
		NewHandler(zap.NewNop(), false).Handle(w, req, NewInternal("boom"))
		var prodBody ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prodBody))
		assert.Empty(t, prodBody.Stack)
	})

	t.Run("Should carry the violation list", func(t *testing.T) {
		h := NewHandler(zap.NewNop(), false)
		req := httptest.NewRequest("GET", "/api/items/search", nil)
		w := httptest.NewRecorder()

		h.Handle(w, req, NewValidationFailed([]FieldViolation{
			{Path: "query", Message: "Search query must be at least 2 characters long"},
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "query", body.Errors[0].Path)
	})

	t.Run("Should convert plain errors to 500", func(t *testing.T) {
		h := NewHandler(zap.NewNop(), false)
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		h.Handle(w, req, fmt.Errorf("some unexpected failure"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, "An internal error occurred", body.Message)
	})

	t.Run("Should report the path for unmatched routes", func(t *testing.T) {
		h := NewHandler(zap.NewNop(), false)
		req := httptest.NewRequest("GET", "/no/such/route", nil)
		w := httptest.NewRecorder()

		h.NotFound(w, req)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, body.Message, "/no/such/route")
	})
}
