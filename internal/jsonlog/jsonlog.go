package jsonlog

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
)

type Level int8

const (
	LevelInfo Level = iota
	LevelError
	LevelFatal
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return ""
	}
}

func (l Level) toZerolog() zerolog.Level {
	switch l {
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	default:
		return zerolog.Disabled
	}
}

// ParseLevel accepts the level names used in configuration: info, error, fatal, off.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return LevelInfo, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "off":
		return LevelOff, nil
	default:
		return LevelInfo, fmt.Errorf("jsonlog: unknown level %q", s)
	}
}

// Logger writes one JSON object per entry. Safe for concurrent use.
type Logger struct {
	zl       zerolog.Logger
	minLevel Level
}

func New(out io.Writer, minLevel Level) *Logger {
	zl := zerolog.New(out).
		Level(minLevel.toZerolog()).
		With().Timestamp().Logger()

	return &Logger{zl: zl, minLevel: minLevel}
}

func (l *Logger) PrintInfo(message string, properties map[string]string) {
	l.print(LevelInfo, message, properties)
}

func (l *Logger) PrintError(err error, properties map[string]string) {
	l.print(LevelError, err.Error(), properties)
}

func (l *Logger) PrintFatal(err error, properties map[string]string) {
	l.print(LevelFatal, err.Error(), properties)
	os.Exit(1)
}

func (l *Logger) print(level Level, message string, properties map[string]string) {
	if level < l.minLevel {
		return
	}

	// WithLevel, not Fatal(): PrintFatal does its own exit.
	ev := l.zl.WithLevel(level.toZerolog())
	if ev == nil {
		return
	}

	if len(properties) > 0 {
		ev = ev.Interface("properties", properties)
	}
	if level >= LevelError {
		ev = ev.Str("trace", string(debug.Stack()))
	}

	ev.Msg(message)
}

// Write lets the logger act as the destination of a standard library
// log.Logger, e.g. http.Server.ErrorLog. Entries are logged at ERROR level.
func (l *Logger) Write(message []byte) (n int, err error) {
	l.print(LevelError, strings.TrimRight(string(message), "\n"), nil)
	return len(message), nil
}
