package simplelog

import "errors"

var (
	// ErrConfig is returned by Spawn and ParseLevel when the requested
	// configuration cannot be honoured.
	ErrConfig = errors.New("simplelog: invalid configuration")

	// ErrDelivery is returned by producers once the backend has stopped
	// accepting messages.
	ErrDelivery = errors.New("simplelog: backend is not accepting messages")

	// ErrClosed is returned by LineChannel receivers once the channel has been
	// closed and drained.
	ErrClosed = errors.New("simplelog: line channel closed")

	// ErrRecvTimeout is returned by LineChannel.RecvTimeout when no line arrived in time.
	ErrRecvTimeout = errors.New("simplelog: receive timed out")
)
