package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const bodySnippetLimit = 512

// InjectEnv marks requests with the deployment mode so the error responder
// knows whether internal detail may leave the process.
func InjectEnv(development bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("development", development)
			return next(c)
		}
	}
}

// CaptureBody buffers a bounded prefix of non-GET request bodies so the
// error responder can log what the client actually sent. The body is
// restored intact for downstream binding.
func CaptureBody() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method == http.MethodGet || req.Body == nil {
				return next(c)
			}

			snippet, err := io.ReadAll(io.LimitReader(req.Body, bodySnippetLimit))
			if err == nil && len(snippet) > 0 {
				c.Set("request_body", string(snippet))
				req.Body = io.NopCloser(io.MultiReader(bytes.NewReader(snippet), req.Body))
			}
			return next(c)
		}
	}
}

// RequestLogger logs one line per completed request.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			)
			return err
		}
	}
}
