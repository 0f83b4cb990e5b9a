package simplelog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/simplelog/internal/queue"
)

// Channel is the shared producer handle of a Backend's message queue.
// Copies and clones all refer to the same queue; the queue lives as long as
// any holder does.
//
// Send never blocks. The queue is unbounded, so a producer that outpaces the
// worker grows memory without limit; Pending exposes the current depth.
type Channel struct {
	q *queue.Queue[Message]
}

func newChannel(q *queue.Queue[Message]) *Channel {
	return &Channel{q: q}
}

// Clone returns another handle to the same queue.
func (c *Channel) Clone() *Channel {
	if c == nil {
		return nil
	}
	return &Channel{q: c.q}
}

// Send enqueues m for the worker.
// Returns an error wrapping ErrDelivery once the backend has shut down.
func (c *Channel) Send(m Message) error {
	if c == nil || c.q == nil {
		return fmt.Errorf("%w: no backend attached", ErrDelivery)
	}
	if err := c.q.Enqueue(m); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// Closed reports whether the backend has stopped accepting messages.
func (c *Channel) Closed() bool {
	return c == nil || c.q == nil || c.q.Closed()
}

// Pending returns the number of messages waiting for the worker.
func (c *Channel) Pending() int {
	if c == nil || c.q == nil {
		return 0
	}
	return c.q.Len()
}

// LineChannel is an unbounded FIFO of formatted lines. A Backend configured
// with WithForwardingChannel writes every line into it, so another consumer
// can observe or relay the output.
type LineChannel struct {
	q *queue.Queue[string]
}

// NewLineChannel creates an open, empty line channel.
func NewLineChannel() *LineChannel {
	return &LineChannel{q: queue.New[string]()}
}

func (c *LineChannel) send(line string) error {
	if err := c.q.Enqueue(line); err != nil {
		return fmt.Errorf("forwarding channel: %w", ErrClosed)
	}
	return nil
}

// Recv waits for the next line until ctx is done.
func (c *LineChannel) Recv(ctx context.Context) (string, error) {
	line, err := c.q.Dequeue(ctx)
	return line, c.mapErr(err)
}

// RecvTimeout waits at most d for the next line.
func (c *LineChannel) RecvTimeout(d time.Duration) (string, error) {
	line, err := c.q.DequeueWithin(context.Background(), d)
	return line, c.mapErr(err)
}

// TryRecv returns the next line if one is queued.
func (c *LineChannel) TryRecv() (string, bool) {
	return c.q.TryDequeue()
}

// Len returns the number of lines waiting to be received.
func (c *LineChannel) Len() int {
	return c.q.Len()
}

// Close stops the channel from accepting lines. Lines already queued can
// still be received.
func (c *LineChannel) Close() {
	c.q.Close()
}

func (c *LineChannel) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, queue.ErrTimeout):
		return ErrRecvTimeout
	case errors.Is(err, queue.ErrQueueClosed):
		return ErrClosed
	default:
		return err
	}
}
