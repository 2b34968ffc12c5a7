package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "competence-system/pkg/errors"
)

type HTTPResponse struct {
	Success bool        `json:"success"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message,omitempty"`
}

type HTTPErrorResponse struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
	// Internal is populated in development mode only.
	Internal string `json:"internal,omitempty"`
}

func SuccessResponse(c echo.Context, body interface{}, message string, code int) error {
	return c.JSON(code, &HTTPResponse{
		Success: true,
		Body:    body,
		Message: message,
	})
}

// ErrorResponse is the single exit point for failures: it classifies the
// error, logs full context server-side, and emits the user-safe mapping.
// Non-operational detail leaves the process only in development mode.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	httpErr := apperrors.Classify(err)

	fields := []zap.Field{
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.Int("status", httpErr.Code),
		zap.String("kind", httpErr.Kind),
		zap.Error(err),
	}
	if user, ctxErr := GetAuthUser(c.Request().Context()); ctxErr == nil {
		fields = append(fields, zap.Uint64("callerId", user.ID))
	}
	if c.Request().Method != http.MethodGet {
		if body, ok := c.Get("request_body").(string); ok && body != "" {
			fields = append(fields, zap.String("request_body", body))
		}
	}
	if httpErr.Code >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Warn("request rejected", fields...)
	}

	resp := &HTTPErrorResponse{
		Success: false,
		Error:   httpErr.Message,
		Details: httpErr.Details,
	}
	if !httpErr.Operational {
		if IsDevelopment(c) {
			resp.Internal = httpErr.Error()
		} else {
			resp.Error = "Something went wrong"
		}
	}

	return c.JSON(httpErr.Code, resp)
}

// ErrorHandler adapts ErrorResponse to echo's error hook so failures raised
// by the framework itself (unknown routes, method mismatches) leave through
// the same classifier as handler errors.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		ErrorResponse(c, err, logger)
	}
}

// IsDevelopment reads the deployment mode injected by middleware.InjectEnv.
func IsDevelopment(c echo.Context) bool {
	dev, _ := c.Get("development").(bool)
	return dev
}
