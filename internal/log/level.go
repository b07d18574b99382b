package log

import (
	"log/slog"
	"strings"
)

// Level is the severity of a log record. It mirrors slog's levels but keeps
// parsing and display under our control so the log_level config value and
// the --verbose flag map cleanly.
type Level int

const (
	// LevelDebug is for request/response tracing and other noisy detail
	LevelDebug Level = iota
	// LevelInfo is for normal operational messages
	LevelInfo
	// LevelWarn is for recoverable problems, such as a failed session restore
	LevelWarn
	// LevelError is for failures surfaced to the user
	LevelError
)

// String returns the upper-case name of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ToSlogLevel converts our Level to slog.Level
func (l Level) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a level name, case-insensitively. Unknown names fall
// back to Info so a typo in the config never silences logging entirely.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
