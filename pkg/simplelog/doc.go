// Package simplelog is a multi-producer, single-consumer logging facility.
//
// A Backend is configured once with a value builder and then spawned. Spawning
// starts one background worker that owns the consumer side of an unbounded
// queue and returns a running Backend whose Channel is the shared producer
// handle. Any number of Loggers wrap that Channel; each is bound to a source
// name and a minimum Level and enqueues the messages that pass its filter.
//
//	backend, err := simplelog.NewBackend().
//		WithWorkerName("logging-backend").
//		WithStdout().
//		Spawn()
//	if err != nil {
//		return err
//	}
//	defer backend.Shutdown(context.Background())
//
//	logger := simplelog.NewLogger("frontend", simplelog.InfoLevel, backend.Channel())
//	logger.Debug("filtered out")
//	logger.Warn("printed to stdout")
//	// frontend - WARN - 2026-10-18T09:30:00.000000Z - printed to stdout
//
// The worker formats every message into one line and writes it to each
// enabled sink in a fixed order: stdout, the forwarding LineChannel, then the
// daily file in the configured folder. Lines reach every sink in the order
// messages arrived at the queue.
//
// A failing sink never stops the worker. Failures are counted in Stats and
// handed to any registered FailureHandler. The optional diagnostics logger
// must not itself be bridged into the same Backend.
//
// The queue is unbounded: producers never block, and memory grows without
// limit if the worker cannot keep up.
package simplelog
