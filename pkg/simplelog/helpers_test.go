package simplelog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const deliveryWait = 2 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// spawnForwarding starts a backend with only a forwarding sink and registers
// its shutdown as test cleanup.
func spawnForwarding(t *testing.T, cfg Config) (*Backend, *LineChannel) {
	t.Helper()

	lines := NewLineChannel()
	backend, err := cfg.
		WithForwardingChannel(lines).
		WithRecvTimeout(10 * time.Millisecond).
		WithDiagnostics(discardLogger()).
		Spawn()
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryWait)
		defer cancel()
		_ = backend.Shutdown(ctx)
	})
	return backend, lines
}

// syncBuffer is a goroutine-safe writer for capturing stdout sink output.
type syncBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

// failingWriter fails every write.
type failingWriter struct{}

var errWriteFailed = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

// fakeClock is a settable clock safe for use from the worker goroutine.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
