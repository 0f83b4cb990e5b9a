package simplelog

import (
	"fmt"
	"strconv"
	"strings"
)

// Level represents the severity of a message. Higher values are more severe.
type Level uint8

// Log levels
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// Rank returns the comparable rank of the level, 0 for Debug through 4 for Fatal.
func (l Level) Rank() int {
	return int(l)
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l <= FatalLevel
}

// String returns the upper-case name of the level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "LEVEL(" + strconv.Itoa(int(l)) + ")"
	}
}

// ShouldEmit reports whether a message at msgLevel passes a client whose
// minimum level is threshold.
func ShouldEmit(msgLevel, threshold Level) bool {
	return msgLevel.Rank() >= threshold.Rank()
}

// ParseLevel parses a level name, ignoring case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return 0, fmt.Errorf("%w: unknown level %q", ErrConfig, s)
	}
}
