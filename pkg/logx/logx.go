package logx

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps "debug", "info", "warn" and "error" to a Level. Anything
// else is LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Fields are structured key/value pairs attached to a Logger.
type Fields map[string]any

// Logger is a field-scoped logger.
type Logger struct {
	zl zerolog.Logger
}

var std atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)
	std.Store(&l)
}

func base() *zerolog.Logger { return std.Load() }

// SetLevel changes the minimum level of the package logger.
func SetLevel(level Level) {
	l := base().Level(level.zerolog())
	std.Store(&l)
}

// SetOutput replaces the sink. format "json" writes one JSON object per line;
// anything else uses the human-readable console writer.
func SetOutput(w io.Writer, format string) {
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	l := zerolog.New(w).With().Timestamp().Logger().Level(base().GetLevel())
	std.Store(&l)
}

// With returns a Logger carrying fields on every entry.
func With(fields Fields) *Logger {
	return &Logger{zl: base().With().Fields(map[string]any(fields)).Logger()}
}

func (l *Logger) With(fields Fields) *Logger {
	return &Logger{zl: l.zl.With().Fields(map[string]any(fields)).Logger()}
}

func (l *Logger) Debugf(format string, args ...any) { l.zl.Debug().Msgf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.zl.Info().Msgf(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.zl.Warn().Msgf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.zl.Error().Msgf(format, args...) }

func Debug(msg string) { base().Debug().Msg(msg) }
func Info(msg string)  { base().Info().Msg(msg) }
func Warn(msg string)  { base().Warn().Msg(msg) }
func Error(msg string) { base().Error().Msg(msg) }

func Debugf(format string, args ...any) { base().Debug().Msgf(format, args...) }
func Infof(format string, args ...any)  { base().Info().Msgf(format, args...) }
func Warnf(format string, args ...any)  { base().Warn().Msgf(format, args...) }
func Errorf(format string, args ...any) { base().Error().Msgf(format, args...) }

// Fatalf logs and exits the process.
func Fatalf(format string, args ...any) { base().Fatal().Msgf(format, args...) }
