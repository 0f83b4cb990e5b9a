package simplelog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/simplelog/internal/queue"
)

func TestChannelCloneSharesQueue(t *testing.T) {
	q := queue.New[Message]()
	ch := newChannel(q)
	clone := ch.Clone()

	require.NoError(t, ch.Send(NewMessage("a", InfoLevel, "one")))
	require.NoError(t, clone.Send(NewMessage("b", InfoLevel, "two")))

	assert.Equal(t, 2, ch.Pending())
	assert.Equal(t, 2, clone.Pending())

	first, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, "one", first.Text)
	second, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, "two", second.Text)
}

func TestChannelSendAfterClose(t *testing.T) {
	q := queue.New[Message]()
	ch := newChannel(q)
	q.Close()

	err := ch.Send(NewMessage("a", InfoLevel, "late"))

	assert.ErrorIs(t, err, ErrDelivery)
	assert.True(t, ch.Closed())
}

func TestNilChannel(t *testing.T) {
	var ch *Channel

	assert.Nil(t, ch.Clone())
	assert.True(t, ch.Closed())
	assert.Equal(t, 0, ch.Pending())
	assert.ErrorIs(t, ch.Send(Message{}), ErrDelivery)

	logger := NewLogger("orphan", DebugLevel, nil)
	assert.ErrorIs(t, logger.Info("nowhere"), ErrDelivery)
}

func TestLineChannel(t *testing.T) {
	lines := NewLineChannel()

	_, ok := lines.TryRecv()
	assert.False(t, ok)

	require.NoError(t, lines.send("a\n"))
	require.NoError(t, lines.send("b\n"))
	assert.Equal(t, 2, lines.Len())

	got, err := lines.Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a\n", got)

	got, ok = lines.TryRecv()
	require.True(t, ok)
	assert.Equal(t, "b\n", got)

	_, err = lines.RecvTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, ErrRecvTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = lines.Recv(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLineChannelClose(t *testing.T) {
	lines := NewLineChannel()
	require.NoError(t, lines.send("kept\n"))
	lines.Close()

	assert.ErrorIs(t, lines.send("dropped\n"), ErrClosed)

	got, err := lines.RecvTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "kept\n", got)

	_, err = lines.RecvTimeout(time.Second)
	assert.ErrorIs(t, err, ErrClosed)
}
