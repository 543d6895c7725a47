package logger

import "ethereum_server/internal/app/port"

// slogAdapter реализует port.Logger через функции пакета.
type slogAdapter struct{}

// NewSlogAdapter returns a port.Logger backed by the default slog logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

func (a *slogAdapter) Info(msg string, args ...any)  { Info(msg, args...) }
func (a *slogAdapter) Debug(msg string, args ...any) { Debug(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { Error(msg, args...) }
