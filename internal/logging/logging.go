// Package logging configures colored structured logging with tint and
// bridges it to the projection engine's Logger interface.
//
// Environment variables:
//
//	CAIXINHA_LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// LevelEnv names the variable read by Setup
const LevelEnv = "CAIXINHA_LOG_LEVEL"

// Setup configures colored logging at the level specified by CAIXINHA_LOG_LEVEL
// (default: INFO) and returns the installed logger.
func Setup() *slog.Logger {
	return SetupWithLevel(ParseLevel(os.Getenv(LevelEnv)))
}

// SetupWithLevel configures colored logging to stderr at the given level.
func SetupWithLevel(level slog.Level) *slog.Logger {
	logger := New(os.Stderr, level)
	slog.SetDefault(logger)
	return logger
}

// New builds a tint logger writing to w without touching the default logger.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}))
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// EngineLogger adapts a *slog.Logger to the printf-style Logger used by the
// calculation, compare and breakeven packages.
type EngineLogger struct {
	L *slog.Logger
}

// NewEngineLogger wraps l; a nil l uses slog.Default().
func NewEngineLogger(l *slog.Logger) *EngineLogger {
	if l == nil {
		l = slog.Default()
	}
	return &EngineLogger{L: l}
}

func (e *EngineLogger) Debugf(format string, args ...interface{}) {
	e.L.Debug(fmt.Sprintf(format, args...))
}

func (e *EngineLogger) Infof(format string, args ...interface{}) {
	e.L.Info(fmt.Sprintf(format, args...))
}

func (e *EngineLogger) Warnf(format string, args ...interface{}) {
	e.L.Warn(fmt.Sprintf(format, args...))
}

func (e *EngineLogger) Errorf(format string, args ...interface{}) {
	e.L.Error(fmt.Sprintf(format, args...))
}
