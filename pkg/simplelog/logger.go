package simplelog

import (
	"fmt"
	"time"
)

// Logger is a per-subsystem client bound to a source name and a minimum level.
// It is safe for concurrent use. Dropping a Logger has no effect on the
// Backend or on other Loggers.
type Logger struct {
	name      string
	threshold Level
	ch        *Channel
}

// NewLogger creates a client that submits through ch.
func NewLogger(name string, threshold Level, ch *Channel) *Logger {
	return &Logger{
		name:      name,
		threshold: threshold,
		ch:        ch.Clone(),
	}
}

// Name returns the source name stamped on every message.
func (l *Logger) Name() string {
	return l.name
}

// Threshold returns the minimum level this client emits.
func (l *Logger) Threshold() Level {
	return l.threshold
}

// Enabled reports whether a message at level would be submitted.
func (l *Logger) Enabled(level Level) bool {
	return ShouldEmit(level, l.threshold)
}

// Log submits text at level if it passes the filter. Filtered messages are
// not an error. Returns an error wrapping ErrDelivery if the backend has stopped.
func (l *Logger) Log(level Level, text string) error {
	if !l.Enabled(level) {
		return nil
	}
	return l.ch.Send(NewMessage(l.name, level, text))
}

// logAt submits with an explicit timestamp; used by the slog bridge.
func (l *Logger) logAt(t time.Time, level Level, text string) error {
	if !l.Enabled(level) {
		return nil
	}
	if t.IsZero() {
		t = time.Now()
	}
	return l.ch.Send(Message{Source: l.name, Time: t.UTC(), Level: level, Text: text})
}

// Debug submits text at DebugLevel.
func (l *Logger) Debug(text string) error { return l.Log(DebugLevel, text) }

// Info submits text at InfoLevel.
func (l *Logger) Info(text string) error { return l.Log(InfoLevel, text) }

// Warn submits text at WarnLevel.
func (l *Logger) Warn(text string) error { return l.Log(WarnLevel, text) }

// Error submits text at ErrorLevel.
func (l *Logger) Error(text string) error { return l.Log(ErrorLevel, text) }

// Fatal submits at the highest level. It does not exit the process.
func (l *Logger) Fatal(text string) error { return l.Log(FatalLevel, text) }

// Logf formats only when the message passes the filter.
func (l *Logger) Logf(level Level, format string, args ...interface{}) error {
	if !l.Enabled(level) {
		return nil
	}
	return l.Log(level, fmt.Sprintf(format, args...))
}

// Debugf formats and submits at DebugLevel.
func (l *Logger) Debugf(format string, args ...interface{}) error {
	return l.Logf(DebugLevel, format, args...)
}

// Infof formats and submits at InfoLevel.
func (l *Logger) Infof(format string, args ...interface{}) error {
	return l.Logf(InfoLevel, format, args...)
}

// Warnf formats and submits at WarnLevel.
func (l *Logger) Warnf(format string, args ...interface{}) error {
	return l.Logf(WarnLevel, format, args...)
}

// Errorf formats and submits at ErrorLevel.
func (l *Logger) Errorf(format string, args ...interface{}) error {
	return l.Logf(ErrorLevel, format, args...)
}

// Fatalf formats and submits at FatalLevel. It does not exit the process.
func (l *Logger) Fatalf(format string, args ...interface{}) error {
	return l.Logf(FatalLevel, format, args...)
}
