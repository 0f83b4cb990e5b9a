package simplelog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// SinkFailure describes one failed write or housekeeping step on a sink.
type SinkFailure struct {
	// ID is a unique identifier for this failure
	ID uuid.UUID

	// Backend is the worker name of the backend that observed the failure
	Backend string

	// Sink is the name of the failing sink
	Sink string

	// Line is the formatted line that was not written; empty for housekeeping failures
	Line string

	// Err is the error returned by the sink
	Err error

	// OccurredAt is when the worker observed the failure
	OccurredAt time.Time
}

// FailureHandler is notified of sink failures. Handlers run on the worker
// goroutine, so a slow handler delays dispatch. A handler must not log
// through the Backend that reports to it.
type FailureHandler interface {
	HandleFailure(ctx context.Context, failure *SinkFailure) error
}

// FailureHandlerFunc adapts a function to FailureHandler.
type FailureHandlerFunc func(ctx context.Context, failure *SinkFailure) error

// HandleFailure calls f.
func (f FailureHandlerFunc) HandleFailure(ctx context.Context, failure *SinkFailure) error {
	return f(ctx, failure)
}

// failureEmitter fans a failure out to every registered handler. One
// handler failing does not stop the others.
type failureEmitter struct {
	handlers []FailureHandler
	logger   *slog.Logger
}

func newFailureEmitter(handlers []FailureHandler, logger *slog.Logger) *failureEmitter {
	return &failureEmitter{
		handlers: handlers,
		logger:   logger.With("component", "failure_emitter"),
	}
}

func (e *failureEmitter) emit(ctx context.Context, failure *SinkFailure) {
	for i, handler := range e.handlers {
		if err := e.call(ctx, handler, failure); err != nil {
			e.logger.Error("failure handler returned an error",
				"error", err,
				"handler_index", i,
				"failure_id", failure.ID,
				"sink", failure.Sink)
		}
	}
}

func (e *failureEmitter) call(ctx context.Context, h FailureHandler, failure *SinkFailure) (err error) {
	defer recoverAsError(&err)
	return h.HandleFailure(ctx, failure)
}
