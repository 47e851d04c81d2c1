// Package logger provides structured logging helpers built on Go's standard
// slog package: a small factory for text/JSON loggers and a set of type-safe
// attribute constructors for the logging patterns used across the client.
//
// Basic usage:
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("request finished",
//		logger.Method("GET"),
//		logger.Path("/api/threshold"),
//		logger.StatusCode(200),
//		logger.Duration(elapsed),
//	)
//
// Attribute helpers return an empty slog.Attr for nil or empty inputs, so
// callers never need explicit nil checks:
//
//	log.Warn("call failed", logger.Error(err)) // safe even when err is nil
package logger
