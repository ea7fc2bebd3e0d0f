// internal/handlers/common_test.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopnest/shopnest-backend/internal/authz"
	"github.com/shopnest/shopnest-backend/internal/services"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

func recordServiceError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondServiceError(c, err, "Order")
	return w
}

func TestRespondServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unauthenticated", authz.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", authz.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not found", services.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"owner mismatch", authz.ErrOwnerMismatch, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"anything else", errors.New("boom"), http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := recordServiceError(t, tt.err)
			assert.Equal(t, tt.status, w.Code)

			var resp utils.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestRespondServiceError_InternalFaultHidesDetail(t *testing.T) {
	fault := &services.InternalError{
		Err: fmt.Errorf("database error: %w", errors.New("pq: connection refused at 10.0.0.5:5432")),
	}

	w := recordServiceError(t, fault)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.Equal(t, "Internal server error", resp.Error.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestRespondServiceError_InsufficientStock(t *testing.T) {
	w := recordServiceError(t, &services.InsufficientStockError{Requested: 8, Available: 3})
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ordered quantity (8) exceeds available stock (3)", resp.Error.Message)

	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 8, details["requested"])
	assert.EqualValues(t, 3, details["available"])
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok := parseIDParam(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
