package transport

import "errors"

// Transport moves raw bytes between the client and a device. Implementations
// are synchronous; one session owns one transport for its whole lifetime.
type Transport interface {
	// Connect opens the underlying channel.
	Connect() error
	// Disconnect closes the underlying channel.
	Disconnect() error
	// Send writes data completely.
	Send(data []byte) error
	// Recv reads up to n bytes. It blocks until at least one byte arrives or
	// the configured timeout passes, in which case it fails with
	// ErrReadTimeout.
	Recv(n int) ([]byte, error)
	// SwitchBaudrate changes the line speed mid-session. Transports without
	// a line speed treat it as a no-op.
	SwitchBaudrate(baud int) error
	// RequiresDeviceAddress reports whether sessions over this transport
	// must address a specific device.
	RequiresDeviceAddress() bool
}

// Transport errors. I/O failures wrap one of these sentinels or carry the
// underlying error with transport context.
var (
	// ErrReadTimeout indicates that no byte arrived within the configured
	// read timeout.
	ErrReadTimeout = errors.New("transport: read timed out")

	// ErrClosed indicates an operation on a transport that is not connected.
	ErrClosed = errors.New("transport: not connected")

	// ErrRetriesExhausted indicates that the retransmission limit was
	// reached while reading a frame.
	ErrRetriesExhausted = errors.New("transport: retransmission limit reached")
)
