package simplelog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/simplelog/internal/queue"
)

// run is the worker loop. It alternates between waiting for a message with a
// bounded timeout and dispatching it, and exits once the queue is closed and
// drained or the backend context is cancelled.
func (b *Backend) run() {
	defer close(b.done)
	defer b.closeSinks()

	ctx := b.ctx
	b.logger.Debug("starting worker")

	// One timer for every idle wait; Reset is safe on a fired timer as of Go 1.23
	timer := time.NewTimer(b.recvTimeout)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			b.logger.Warn("worker stopped before draining queue",
				"abandoned", b.queue.Len())
			return
		}

		timer.Reset(b.recvTimeout)
		msg, err := b.queue.DequeueUntil(ctx, timer.C)
		switch {
		case err == nil:
			b.dispatch(ctx, msg)

		case errors.Is(err, queue.ErrTimeout):
			b.heartbeat(ctx)

		case errors.Is(err, queue.ErrQueueClosed):
			b.logger.Debug("queue closed and drained, stopping worker")
			return

		default:
			// Context cancelled, stop worker
			b.logger.Warn("worker stopped before draining queue",
				"abandoned", b.queue.Len(),
				"error", err)
			return
		}
	}
}

// dispatch formats msg once and writes the line to every sink in order.
func (b *Backend) dispatch(ctx context.Context, msg Message) {
	line := FormatLine(msg)
	for _, s := range b.sinks {
		if err := writeSink(s, line); err != nil {
			b.reportFailure(ctx, s, line, err)
		}
	}
	b.dispatched.Add(1)
}

// heartbeat runs on idle cycles and gives sinks a chance to do time based
// housekeeping. It never produces output lines.
func (b *Backend) heartbeat(ctx context.Context) {
	b.heartbeats.Add(1)
	now := b.now()
	for _, s := range b.sinks {
		t, ok := s.(Ticker)
		if !ok {
			continue
		}
		if err := tickSink(t, now); err != nil {
			b.reportFailure(ctx, s, "", err)
		}
	}
}

// reportFailure counts the failure and notifies diagnostics. It never logs
// through the backend itself.
func (b *Backend) reportFailure(ctx context.Context, s Sink, line string, err error) {
	if n, ok := b.failures[s.Name()]; ok {
		n.Add(1)
	}

	failure := &SinkFailure{
		ID:         uuid.New(),
		Backend:    b.name,
		Sink:       s.Name(),
		Line:       line,
		Err:        err,
		OccurredAt: b.now(),
	}

	b.logger.Warn("sink write failed",
		"failure_id", failure.ID,
		"sink", failure.Sink,
		"error", err)

	b.emitter.emit(ctx, failure)
}

func (b *Backend) closeSinks() {
	for _, s := range b.sinks {
		if err := s.Close(); err != nil {
			b.logger.Error("failed to close sink", "sink", s.Name(), "error", err)
		}
	}
	b.logger.Info("logging backend stopped",
		"dispatched", b.dispatched.Load())
}

func writeSink(s Sink, line string) (err error) {
	defer recoverAsError(&err)
	return s.WriteLine(line)
}

func tickSink(t Ticker, now time.Time) (err error) {
	defer recoverAsError(&err)
	return t.Tick(now)
}

// recoverAsError turns a panic in a sink or handler into an error so one bad
// collaborator cannot kill the worker.
func recoverAsError(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}
