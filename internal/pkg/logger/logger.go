package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger builds the process zap logger for the given level.
// Debug level uses the development config, everything else the production config.
// A non-empty file path adds that file as an extra output.
func NewZapLogger(levelStr string, file string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	if file != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}

	zl, buildErr := cfg.Build()
	if buildErr != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", buildErr)
	}
	if err != nil {
		zl.Warn("Invalid log level string, defaulting to INFO", zap.String("input", levelStr))
	}
	return zl, nil
}

// InitSlog routes the default slog logger into zl.
func InitSlog(zl *zap.Logger) {
	handler := zapslog.NewHandler(zl.Core())
	slog.SetDefault(slog.New(handler))
}

// InitSlogLeveled routes the default slog logger into zl through slog-zap,
// dropping records below level before they reach zap.
func InitSlogLeveled(zl *zap.Logger, level slog.Leveler) {
	handler := slogzap.Option{Level: level, Logger: zl}.NewZapHandler()
	slog.SetDefault(slog.New(handler))
}

// SlogLevel maps a config level string onto slog. Unknown values map to info.
func SlogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	slog.Default().Debug(msg, args...)
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	slog.Default().Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	slog.Default().Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	slog.Default().Error(msg, args...)
}

// подменяется в тестах
var exit = os.Exit

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	slog.Default().Log(context.Background(), slog.LevelError, msg, args...)
	exit(1)
}
