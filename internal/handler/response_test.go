package handler

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

	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

func testContext(debug bool) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)
	c.Set(DebugKey, debug)
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{types.FieldError("name", "The name field is required."), http.StatusUnprocessableEntity, "Validation failed"},
		{fmt.Errorf("wrapped: %w", types.ErrNotFound), http.StatusNotFound, "Resource not found"},
		{types.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{types.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{types.ErrUnauthenticated, http.StatusUnauthorized, "Unauthenticated"},
		{types.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{fmt.Errorf("%w: duplicate", types.ErrConflict), http.StatusConflict, "Resource conflict"},
		{errors.New("db exploded"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			c, rec := testContext(false)
			Error(c, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.msg, resp.Message)
		})
	}

	c, rec := testContext(false)
	Error(c, types.FieldError("name", "The name field is required."))
	assert.Equal(t, map[string][]string{"name": {"The name field is required."}}, decode(t, rec).Errors)
}

func TestInternalServerErrorDebug(t *testing.T) {
	c, rec := testContext(true)
	Error(c, errors.New("db exploded"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "db exploded", decode(t, rec).Message)
}

func TestSuccessOmitsEmptyData(t *testing.T) {
	c, rec := testContext(false)
	Success(c, nil, "done")
	assert.JSONEq(t, `{"success":true,"message":"done"}`, rec.Body.String())

	c, rec = testContext(false)
	Created(c, []string{}, "created")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"message":"created"}`, rec.Body.String())
}

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc":    "abc",
		"bearer abc ":   "abc",
		"BEARER  abc":   "abc",
		"Basic abc":     "",
		"Bearer":        "",
		"":              "",
		"Bearerabcdefg": "",
	}
	for header, want := range tests {
		c, _ := testContext(false)
		if header != "" {
			c.Request.Header.Set("Authorization", header)
		}
		assert.Equal(t, want, BearerToken(c), "header %q", header)
	}
}

func TestParamID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-1", ""} {
		c, rec := testContext(false)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, ok := paramID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	c, _ := testContext(false)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := paramID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}
