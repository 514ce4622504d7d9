package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LogConfig holds configuration for the logging middleware
type LogConfig struct {
	Logger *slog.Logger
	// Include request body in logs
	IncludeBody bool
	// Skip logging for paths with these prefixes
	SkipPaths []string
}

// LogData contains all the information that will be logged
type LogData struct {
	Timestamp     time.Time     `json:"timestamp"`
	Method        string        `json:"method"`
	Path          string        `json:"path"`
	URL           string        `json:"url"`
	Status        int           `json:"status"`
	Latency       time.Duration `json:"latency"`
	IP            string        `json:"ip"`
	UserAgent     string        `json:"user_agent"`
	RequestID     string        `json:"request_id"`
	RequestBody   interface{}   `json:"request_body,omitempty"`
	Error         string        `json:"error,omitempty"`
	ContentLength int64         `json:"content_length"`
}

// DefaultLogConfig returns a default configuration for the logging middleware
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Logger:      slog.Default(),
		IncludeBody: false,
		SkipPaths:   []string{"/health", "/static"},
	}
}

// LoggingMiddleware creates a new logging middleware with the given configuration
func LoggingMiddleware(config ...LogConfig) fiber.Handler {
	cfg := DefaultLogConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		for _, skipPath := range cfg.SkipPaths {
			if strings.HasPrefix(c.Path(), skipPath) {
				return c.Next()
			}
		}

		// Multipart uploads are never logged
		var requestBody interface{}
		if cfg.IncludeBody && c.Method() != fiber.MethodGet && !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
			if body := c.Body(); len(body) > 0 {
				var jsonData interface{}
				if err := json.Unmarshal(body, &jsonData); err == nil {
					requestBody = jsonData
				} else {
					requestBody = string(body)
				}
			}
		}

		err := c.Next()

		data := LogData{
			Timestamp:     start,
			Method:        c.Method(),
			Path:          c.Path(),
			URL:           c.OriginalURL(),
			Status:        c.Response().StatusCode(),
			Latency:       time.Since(start),
			IP:            c.IP(),
			UserAgent:     c.Get(fiber.HeaderUserAgent),
			RequestID:     c.Get(fiber.HeaderXRequestID),
			RequestBody:   requestBody,
			ContentLength: int64(len(c.Response().Body())),
		}
		if err != nil {
			// the error handler has not written the status yet
			data.Error = err.Error()
			data.Status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				data.Status = fe.Code
			}
		}

		logRequest(cfg.Logger, data)
		return err
	}
}

// logRequest picks the level from the response status
func logRequest(logger *slog.Logger, data LogData) {
	level := slog.LevelInfo
	switch {
	case data.Status >= 500:
		level = slog.LevelError
	case data.Status >= 400:
		level = slog.LevelWarn
	}

	attrs := []any{
		"method", data.Method,
		"path", data.Path,
		"status", data.Status,
		"latency", data.Latency,
		"ip", data.IP,
		"bytes", data.ContentLength,
	}
	if data.RequestID != "" {
		attrs = append(attrs, "request_id", data.RequestID)
	}
	if data.RequestBody != nil {
		attrs = append(attrs, "body", data.RequestBody)
	}
	if data.Error != "" {
		attrs = append(attrs, "err", data.Error)
	}
	logger.Log(context.Background(), level, "request", attrs...)
}

// RequestLogger creates a middleware that logs detailed request information
func RequestLogger(logger *slog.Logger) fiber.Handler {
	return LoggingMiddleware(LogConfig{
		Logger:      logger,
		IncludeBody: true,
		SkipPaths:   []string{"/health", "/static", "/api/state"},
	})
}
