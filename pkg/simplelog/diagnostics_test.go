package simplelog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/simplelog/internal/testutils"
)

func TestDiagnosticsReportSinkFailures(t *testing.T) {
	diag, h := testutils.NewTestLogger()
	lines := NewLineChannel()

	backend, err := NewBackend().
		WithWorkerName("diag").
		WithWriter(failingWriter{}).
		WithForwardingChannel(lines).
		WithDiagnostics(diag).
		WithFailureHandler(FailureHandlerFunc(func(context.Context, *SinkFailure) error {
			return errors.New("handler unavailable")
		})).
		Spawn()
	require.NoError(t, err)

	require.NoError(t, NewLogger("svc", DebugLevel, backend.Channel()).Info("x"))
	_, err = lines.RecvTimeout(deliveryWait)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), deliveryWait)
	defer cancel()
	require.NoError(t, backend.Shutdown(ctx))

	started := h.EntriesWithMessage("logging backend started")
	require.Len(t, started, 1)
	assert.Equal(t, "diag", started[0]["worker"])

	failed := h.EntriesWithMessage("sink write failed")
	require.Len(t, failed, 1)
	assert.Equal(t, SinkStdout, failed[0]["sink"])
	assert.Equal(t, "WARN", failed[0]["level"])

	handlerErrs := h.EntriesWithMessage("failure handler returned an error")
	require.Len(t, handlerErrs, 1)
	assert.Equal(t, "failure_emitter", handlerErrs[0]["component"])

	assert.Len(t, h.EntriesWithMessage("logging backend stopped"), 1)
}

func TestFailureHandlersAllCalled(t *testing.T) {
	calls := make(chan string, 4)
	record := func(name string, err error) FailureHandler {
		return FailureHandlerFunc(func(context.Context, *SinkFailure) error {
			calls <- name
			return err
		})
	}

	backend, lines := spawnForwarding(t, NewBackend().
		WithWriter(failingWriter{}).
		WithFailureHandler(record("first", errors.New("broken"))).
		WithFailureHandler(record("second", nil)))

	require.NoError(t, NewLogger("svc", DebugLevel, backend.Channel()).Info("x"))
	_, err := lines.RecvTimeout(deliveryWait)
	require.NoError(t, err)

	var got []string
	for i := 0; i < 2; i++ {
		select {
		case name := <-calls:
			got = append(got, name)
		case <-time.After(deliveryWait):
			t.Fatal("failure handler not called")
		}
	}
	assert.Equal(t, []string{"first", "second"}, got)
}
