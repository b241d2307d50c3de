package transport

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/pwitab/iec62056-21/logger"
)

// DefaultTCPTimeout is the default dial and per-read timeout for TCP
// transports.
const DefaultTCPTimeout = 30 * time.Second

// TCP is a Transport over a TCP connection, for meters reachable through a
// network interface or a serial-device server. Sessions over TCP must address
// the device explicitly.
type TCP struct {
	address string
	timeout time.Duration
	logger  logger.Logger

	conn net.Conn
}

var _ Transport = (*TCP)(nil)

// TCPOption configures a TCP transport.
type TCPOption interface {
	apply(*TCP) error
}

type tcpOptFunc func(*TCP) error

func (f tcpOptFunc) apply(t *TCP) error {
	return f(t)
}

// WithTCPTimeout sets the dial and per-read timeout.
func WithTCPTimeout(d time.Duration) TCPOption {
	return tcpOptFunc(func(t *TCP) error {
		if d <= 0 {
			return fmt.Errorf("transport: tcp timeout %v must be positive", d)
		}
		t.timeout = d

		return nil
	})
}

// WithTCPLogger sets the logger for transport diagnostics.
func WithTCPLogger(l logger.Logger) TCPOption {
	return tcpOptFunc(func(t *TCP) error {
		if l == nil {
			return fmt.Errorf("transport: tcp logger cannot be nil")
		}
		t.logger = l

		return nil
	})
}

// NewTCP builds a TCP transport for address in host:port form.
func NewTCP(address string, opts ...TCPOption) (*TCP, error) {
	t := &TCP{
		address: address,
		timeout: DefaultTCPTimeout,
		logger:  logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Connect dials the device.
func (t *TCP) Connect() error {
	conn, err := net.DialTimeout("tcp", t.address, t.timeout)
	if err != nil {
		return fmt.Errorf("transport: connecting to %s: %w", t.address, err)
	}

	t.conn = conn
	t.logger.Debug("tcp connection established", "address", t.address)

	return nil
}

// Disconnect closes the connection.
func (t *TCP) Disconnect() error {
	if t.conn == nil {
		return ErrClosed
	}

	err := t.conn.Close()
	t.conn = nil
	if err != nil {
		return fmt.Errorf("transport: closing tcp connection: %w", err)
	}

	return nil
}

// Send writes data completely.
func (t *TCP) Send(data []byte) error {
	if t.conn == nil {
		return ErrClosed
	}

	if _, err := t.conn.Write(data); err != nil {
		return fmt.Errorf("transport: tcp write: %w", err)
	}

	return nil
}

// Recv reads up to n bytes. Each call arms a fresh read deadline; exceeding
// it fails with ErrReadTimeout.
func (t *TCP) Recv(n int) ([]byte, error) {
	if t.conn == nil {
		return nil, ErrClosed
	}

	if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return nil, fmt.Errorf("transport: setting read deadline: %w", err)
	}

	buf := make([]byte, n)
	read, err := t.conn.Read(buf)
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return nil, fmt.Errorf("%w: no data within %v", ErrReadTimeout, t.timeout)
		}

		return nil, fmt.Errorf("transport: tcp read: %w", err)
	}

	return buf[:read], nil
}

// SwitchBaudrate is a no-op: line speed has no meaning on TCP.
func (t *TCP) SwitchBaudrate(baud int) error {
	t.logger.Debug("ignoring baudrate switch on tcp", "baudrate", baud)

	return nil
}

// RequiresDeviceAddress reports true.
func (t *TCP) RequiresDeviceAddress() bool {
	return true
}
