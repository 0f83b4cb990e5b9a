package simplelog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/simplelog/internal/queue"
)

// Defaults applied by NewBackend
const (
	DefaultWorkerName  = "logging-backend"
	DefaultRecvTimeout = 200 * time.Millisecond
)

// Config is an immutable backend configuration. Every With method returns a
// modified copy; only Spawn has side effects. A Config with no sinks is valid
// and discards every message.
type Config struct {
	name        string
	stdout      io.Writer
	forward     *LineChannel
	forwardSet  bool
	folder      string
	recvTimeout time.Duration
	logger      *slog.Logger
	handlers    []FailureHandler
	now         func() time.Time
}

// NewBackend returns the default configuration with no sinks enabled.
func NewBackend() Config {
	return Config{
		name:        DefaultWorkerName,
		recvTimeout: DefaultRecvTimeout,
		now:         time.Now,
	}
}

// WithWorkerName names the worker for diagnostics and profiler labels.
func (c Config) WithWorkerName(name string) Config {
	c.name = name
	return c
}

// WithStdout writes every line to standard output.
func (c Config) WithStdout() Config {
	c.stdout = os.Stdout
	return c
}

// WithWriter writes every line to w in place of standard output.
func (c Config) WithWriter(w io.Writer) Config {
	c.stdout = w
	return c
}

// WithForwardingChannel enqueues every line onto ch. ch must come from
// NewLineChannel; Spawn rejects nil.
func (c Config) WithForwardingChannel(ch *LineChannel) Config {
	c.forward = ch
	c.forwardSet = true
	return c
}

// WithFolder appends every line to a daily file <path>/<YYYY-MM-DD>.log.
// The folder must exist when Spawn is called.
func (c Config) WithFolder(path string) Config {
	c.folder = path
	return c
}

// WithRecvTimeout sets how long the worker waits for a message before running
// an idle housekeeping cycle.
func (c Config) WithRecvTimeout(d time.Duration) Config {
	c.recvTimeout = d
	return c
}

// WithDiagnostics sets the logger the worker reports its own lifecycle and
// sink failures to. It must not be bridged into the backend being configured.
func (c Config) WithDiagnostics(logger *slog.Logger) Config {
	c.logger = logger
	return c
}

// WithFailureHandler registers a handler for sink failures.
func (c Config) WithFailureHandler(h FailureHandler) Config {
	c.handlers = append(append([]FailureHandler(nil), c.handlers...), h)
	return c
}

// validate rejects configurations that cannot run, before anything is started.
func (c Config) validate() error {
	if c.recvTimeout <= 0 {
		return fmt.Errorf("%w: receive timeout must be positive, got %s", ErrConfig, c.recvTimeout)
	}
	if c.forwardSet && (c.forward == nil || c.forward.q == nil) {
		return fmt.Errorf("%w: forwarding channel is nil", ErrConfig)
	}
	if c.folder != "" {
		info, err := os.Stat(c.folder)
		if err != nil {
			return fmt.Errorf("%w: log folder: %v", ErrConfig, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: log folder %s is not a directory", ErrConfig, c.folder)
		}
	}
	for i, h := range c.handlers {
		if h == nil {
			return fmt.Errorf("%w: failure handler %d is nil", ErrConfig, i)
		}
	}
	return nil
}

// Spawn validates the configuration, opens the sinks and starts the worker.
// Configuration problems are reported here as errors wrapping ErrConfig.
func (c Config) Spawn() (*Backend, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	logger := c.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := c.now
	if now == nil {
		now = time.Now
	}

	// Sink order is fixed: stdout, forwarding channel, file
	var sinks []Sink
	if c.stdout != nil {
		sinks = append(sinks, newWriterSink(SinkStdout, c.stdout))
	}
	if c.forward != nil {
		sinks = append(sinks, &forwardSink{ch: c.forward})
	}
	if c.folder != "" {
		fs, err := openFileSink(c.folder, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		sinks = append(sinks, fs)
	}

	id := uuid.New()
	logger = logger.With("backend_id", id, "worker", c.name)

	failures := make(map[string]*atomic.Uint64, len(sinks))
	for _, s := range sinks {
		failures[s.Name()] = new(atomic.Uint64)
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := queue.New[Message]()
	b := &Backend{
		id:          id,
		name:        c.name,
		queue:       q,
		channel:     newChannel(q),
		sinks:       sinks,
		recvTimeout: c.recvTimeout,
		logger:      logger,
		emitter:     newFailureEmitter(c.handlers, logger),
		failures:    failures,
		now:         now,
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}

	go b.run()

	logger.Info("logging backend started",
		"sinks", len(sinks),
		"recv_timeout", c.recvTimeout)
	return b, nil
}

// Backend is a running worker together with its producer Channel.
type Backend struct {
	id          uuid.UUID
	name        string
	queue       *queue.Queue[Message]
	channel     *Channel
	sinks       []Sink
	recvTimeout time.Duration
	logger      *slog.Logger
	emitter     *failureEmitter
	now         func() time.Time

	dispatched atomic.Uint64
	heartbeats atomic.Uint64
	failures   map[string]*atomic.Uint64

	// ctx is cancelled to abandon draining when Shutdown runs out of time
	ctx    context.Context
	cancel context.CancelFunc

	done      chan struct{}
	closeOnce sync.Once
}

// ID returns the unique identifier of this backend instance.
func (b *Backend) ID() uuid.UUID {
	return b.id
}

// Name returns the worker name.
func (b *Backend) Name() string {
	return b.name
}

// Channel returns a new producer handle to the backend's queue.
func (b *Backend) Channel() *Channel {
	return b.channel.Clone()
}

// Done is closed once the worker has exited and all sinks are closed.
func (b *Backend) Done() <-chan struct{} {
	return b.done
}

// Shutdown stops accepting messages, waits for the worker to write what was
// already queued and close the sinks. If ctx ends first the worker is told to
// abandon the remaining messages and Shutdown returns ctx.Err() immediately.
// A sink write in progress is not interrupted, so Done may close later.
// Safe to call more than once.
func (b *Backend) Shutdown(ctx context.Context) error {
	b.closeOnce.Do(func() {
		b.queue.Close()
		b.logger.Info("logging backend shutting down", "pending", b.queue.Len())
	})

	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		b.cancel()
		return ctx.Err()
	}
}

// Stats is a point-in-time snapshot of backend counters.
type Stats struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Dispatched uint64            `json:"dispatched"`
	Heartbeats uint64            `json:"heartbeats"`
	Pending    int               `json:"pending"`
	Failures   map[string]uint64 `json:"failures"`
	Stopped    bool              `json:"stopped"`
}

// Stats returns current counters. Failures has one entry per enabled sink.
func (b *Backend) Stats() Stats {
	failures := make(map[string]uint64, len(b.failures))
	for name, n := range b.failures {
		failures[name] = n.Load()
	}

	stopped := false
	select {
	case <-b.done:
		stopped = true
	default:
	}

	return Stats{
		ID:         b.id,
		Name:       b.name,
		Dispatched: b.dispatched.Load(),
		Heartbeats: b.heartbeats.Load(),
		Pending:    b.queue.Len(),
		Failures:   failures,
		Stopped:    stopped,
	}
}
