// Package log builds the zap loggers used by flusty and provides field
// helpers for native-library events.
package log

import (
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger. Debug mode logs everything in a human-readable
// form; otherwise only warnings and errors are logged as JSON.
func New(debug bool) *zap.Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		// Fallback to no-op if config fails
		logger = zap.NewNop()
	}
	return logger.Named("flusty")
}

// Hex formats an address as a hex string.
func Hex(addr uintptr) string {
	return "0x" + strconv.FormatUint(uint64(addr), 16)
}

// Addr creates an address field.
func Addr(addr uintptr) zap.Field {
	return zap.String("addr", Hex(addr))
}

// Path creates a library path field.
func Path(path string) zap.Field {
	return zap.String("path", path)
}

// Fn creates a symbol name field.
func Fn(name string) zap.Field {
	return zap.String("fn", name)
}
