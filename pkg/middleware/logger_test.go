package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureBodyStoresSnippetAndRestoresBody(t *testing.T) {
	payload := `{"email":"user@nexusai.com","password":"secret123"}`

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenByHandler string
	handler := CaptureBody()(func(c echo.Context) error {
		raw, err := io.ReadAll(c.Request().Body)
		require.NoError(t, err)
		seenByHandler = string(raw)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	assert.Equal(t, payload, seenByHandler, "downstream binding must see the full body")
	snippet, _ := c.Get("request_body").(string)
	assert.Equal(t, payload, snippet)
}

func TestCaptureBodyTruncatesLargePayloads(t *testing.T) {
	payload := strings.Repeat("x", bodySnippetLimit*3)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CaptureBody()(func(c echo.Context) error {
		raw, err := io.ReadAll(c.Request().Body)
		require.NoError(t, err)
		assert.Len(t, raw, len(payload), "body must be restored beyond the snippet")
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	snippet, _ := c.Get("request_body").(string)
	assert.Len(t, snippet, bodySnippetLimit)
}

func TestCaptureBodySkipsGet(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CaptureBody()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	assert.Nil(t, c.Get("request_body"))
}
