package simplelog

import (
	"bufio"
	"io"
	"time"
)

// Sink receives formatted lines from the worker. Only the worker calls a
// sink, so implementations need no locking of their own.
type Sink interface {
	// Name identifies the sink in Stats and failure reports.
	Name() string

	// WriteLine writes one newline-terminated line.
	WriteLine(line string) error

	// Close flushes buffered data and releases resources.
	Close() error
}

// Ticker is implemented by sinks that do housekeeping on idle cycles.
type Ticker interface {
	Tick(now time.Time) error
}

// Sink names reported in Stats
const (
	SinkStdout  = "stdout"
	SinkForward = "forward"
	SinkFile    = "file"
)

// writerSink writes to a stream and flushes after every line.
type writerSink struct {
	name string
	w    io.Writer
	bw   *bufio.Writer
}

func newWriterSink(name string, w io.Writer) *writerSink {
	return &writerSink{name: name, w: w, bw: bufio.NewWriter(w)}
}

func (s *writerSink) Name() string { return s.name }

func (s *writerSink) WriteLine(line string) error {
	if _, err := s.bw.WriteString(line); err != nil {
		s.bw.Reset(s.w)
		return err
	}
	if err := s.bw.Flush(); err != nil {
		// bufio keeps write errors sticky; drop the stuck bytes so the next line starts clean
		s.bw.Reset(s.w)
		return err
	}
	return nil
}

func (s *writerSink) Close() error {
	return s.bw.Flush()
}

// forwardSink enqueues lines onto a LineChannel owned by someone else.
type forwardSink struct {
	ch *LineChannel
}

func (s *forwardSink) Name() string { return SinkForward }

func (s *forwardSink) WriteLine(line string) error {
	return s.ch.send(line)
}

// Close leaves the channel open; its owner decides when to close it.
func (s *forwardSink) Close() error { return nil }
