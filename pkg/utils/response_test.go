package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "competence-system/pkg/errors"
)

func TestErrorHandlerClassifiesUnknownRoute(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Route not found", body.Error)
}

func TestErrorHandlerSkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zap.NewNop())
	e.GET("/half", func(c echo.Context) error {
		c.String(http.StatusOK, "partial")
		return apperrors.ErrForbidden
	})

	req := httptest.NewRequest(http.MethodGet, "/half", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestErrorResponseLogsBodySnippetForNonGet(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"x"}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_body", `{"email":"x"}`)

	require.NoError(t, ErrorResponse(c, apperrors.ErrBadRequest, logger))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, `{"email":"x"}`, fields["request_body"])
}

func TestErrorResponseOmitsBodySnippetForGet(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_body", "should not appear")

	require.NoError(t, ErrorResponse(c, apperrors.ErrForbidden, logger))

	entries := logs.All()
	require.Len(t, entries, 1)
	_, present := entries[0].ContextMap()["request_body"]
	assert.False(t, present)
}
