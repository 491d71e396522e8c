// Package logger wraps a process-wide zap logger with context-aware helpers.
// Every log call takes a context so the request id stamped by the HTTP
// middleware follows the request through usecases and background jobs.
package logger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextKey is the typed key under which background jobs store a request id.
type ContextKey string

const RequestIDKey ContextKey = "request_id"

var (
	log  *zap.Logger
	once sync.Once
)

// buildLogger is a seam so tests can force a build failure. The caller skip
// keeps the reported call site on the usecase, not this package.
var buildLogger = func(config zap.Config) (*zap.Logger, error) {
	return config.Build(zap.AddCallerSkip(1))
}

// Init configures the global logger once. Production gets JSON output with
// ISO8601 timestamps; development gets the colored console encoder. A build
// failure is unrecoverable, so it panics.
func Init(env string) {
	once.Do(func() {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		if env == "development" {
			config = zap.NewDevelopmentConfig()
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		var err error
		log, err = buildLogger(config)
		if err != nil {
			panic(err)
		}
	})
}

// GetLogger returns the underlying zap logger.
func GetLogger() *zap.Logger {
	return log
}

// requestID pulls the request id out of the context. The gin middleware
// stores it under a plain string key, background jobs under the typed one,
// so both are checked.
func requestID(ctx context.Context) (string, bool) {
	if id, ok := ctx.Value("request_id").(string); ok {
		return id, true
	}
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id, true
	}
	return "", false
}

// WithContext returns the logger annotated with the context's request id,
// or the bare logger when there is none.
func WithContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return log
	}
	if id, ok := requestID(ctx); ok {
		return log.With(zap.String("request_id", id))
	}
	return log
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Info(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Error(msg, fields...)
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Debug(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Warn(msg, fields...)
}

// LogRequest emits the per-request access log line.
func LogRequest(ctx context.Context, method, path string, status int, latency time.Duration, clientIP string) {
	WithContext(ctx).Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", clientIP),
	)
}
