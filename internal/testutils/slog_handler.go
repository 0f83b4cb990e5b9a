package testutils

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry represents a simplified log record for testing
type LogEntry map[string]interface{}

// TestSlogHandler is a memory-backed slog.Handler for asserting on
// diagnostics in tests. Attributes added through WithAttrs are kept.
type TestSlogHandler struct {
	store *entryStore
	attrs []slog.Attr
}

type entryStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewTestSlogHandler creates a new memory-backed slog handler
func NewTestSlogHandler() *TestSlogHandler {
	return &TestSlogHandler{store: &entryStore{}}
}

// NewTestLogger returns a logger writing to a fresh TestSlogHandler.
func NewTestLogger() (*slog.Logger, *TestSlogHandler) {
	h := NewTestSlogHandler()
	return slog.New(h), h
}

// Enabled satisfies slog.Handler interface
func (h *TestSlogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle satisfies slog.Handler interface
func (h *TestSlogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := make(LogEntry)
	entry["level"] = r.Level.String()
	entry["message"] = r.Message

	for _, a := range h.attrs {
		entry[a.Key] = a.Value.Any()
	}
	r.Attrs(func(attr slog.Attr) bool {
		entry[attr.Key] = attr.Value.Any()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.entries = append(h.store.entries, entry)
	return nil
}

// WithAttrs satisfies slog.Handler interface
func (h *TestSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := &TestSlogHandler{store: h.store}
	nh.attrs = append(append(nh.attrs, h.attrs...), attrs...)
	return nh
}

// WithGroup satisfies slog.Handler interface; groups are flattened
func (h *TestSlogHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Entries returns all captured log entries
func (h *TestSlogHandler) Entries() []LogEntry {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	result := make([]LogEntry, len(h.store.entries))
	copy(result, h.store.entries)
	return result
}

// EntriesWithMessage returns the captured entries whose message equals msg.
func (h *TestSlogHandler) EntriesWithMessage(msg string) []LogEntry {
	var result []LogEntry
	for _, e := range h.Entries() {
		if e["message"] == msg {
			result = append(result, e)
		}
	}
	return result
}

// Clear resets the captured log entries
func (h *TestSlogHandler) Clear() {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	h.store.entries = nil
}
