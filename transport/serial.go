package transport

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/pwitab/iec62056-21/logger"
)

// InitialBaudrate is the line speed every mode C exchange starts at.
const InitialBaudrate = 300

// DefaultSerialTimeout is the default per-read timeout on serial lines.
const DefaultSerialTimeout = 10 * time.Second

// Serial is a Transport over a serial line, typically an optical probe or a
// USB converter attached to the meter. The port runs with 7 data bits, even
// parity and one stop bit as the protocol requires, starting at 300 baud
// until the session negotiates a higher rate.
type Serial struct {
	portName string
	timeout  time.Duration
	logger   logger.Logger

	port     *serial.Port
	baudrate int
}

var _ Transport = (*Serial)(nil)

// SerialOption configures a Serial transport.
type SerialOption interface {
	apply(*Serial) error
}

type serialOptFunc func(*Serial) error

func (f serialOptFunc) apply(s *Serial) error {
	return f(s)
}

// WithSerialTimeout sets the per-read timeout.
func WithSerialTimeout(d time.Duration) SerialOption {
	return serialOptFunc(func(s *Serial) error {
		if d <= 0 {
			return fmt.Errorf("transport: serial timeout %v must be positive", d)
		}
		s.timeout = d

		return nil
	})
}

// WithSerialLogger sets the logger for transport diagnostics.
func WithSerialLogger(l logger.Logger) SerialOption {
	return serialOptFunc(func(s *Serial) error {
		if l == nil {
			return fmt.Errorf("transport: serial logger cannot be nil")
		}
		s.logger = l

		return nil
	})
}

// NewSerial builds a serial transport for the named port.
func NewSerial(portName string, opts ...SerialOption) (*Serial, error) {
	s := &Serial{
		portName: portName,
		timeout:  DefaultSerialTimeout,
		logger:   logger.GetLogger(),
		baudrate: InitialBaudrate,
	}

	for _, opt := range opts {
		if err := opt.apply(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Connect opens the port at the initial baudrate.
func (s *Serial) Connect() error {
	return s.open(InitialBaudrate)
}

// Disconnect closes the port.
func (s *Serial) Disconnect() error {
	if s.port == nil {
		return ErrClosed
	}

	err := s.port.Close()
	s.port = nil
	if err != nil {
		return fmt.Errorf("transport: closing serial port: %w", err)
	}

	return nil
}

// Send writes data completely.
func (s *Serial) Send(data []byte) error {
	if s.port == nil {
		return ErrClosed
	}

	for len(data) > 0 {
		n, err := s.port.Write(data)
		if err != nil {
			return fmt.Errorf("transport: serial write: %w", err)
		}
		data = data[n:]
	}

	return nil
}

// Recv reads up to n bytes. A read that produces nothing within the timeout
// fails with ErrReadTimeout.
func (s *Serial) Recv(n int) ([]byte, error) {
	if s.port == nil {
		return nil, ErrClosed
	}

	buf := make([]byte, n)
	read, err := s.port.Read(buf)
	if err != nil {
		// The port signals an empty deadline-bounded read as EOF.
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no data within %v", ErrReadTimeout, s.timeout)
		}

		return nil, fmt.Errorf("transport: serial read: %w", err)
	}
	if read == 0 {
		return nil, fmt.Errorf("%w: no data within %v", ErrReadTimeout, s.timeout)
	}

	return buf[:read], nil
}

// SwitchBaudrate reopens the port at the negotiated rate, keeping the 7E1
// frame settings.
func (s *Serial) SwitchBaudrate(baud int) error {
	if s.port == nil {
		return ErrClosed
	}
	if baud == s.baudrate {
		return nil
	}

	s.logger.Info("switching baudrate", "port", s.portName, "baudrate", baud)
	if err := s.port.Close(); err != nil {
		return fmt.Errorf("transport: closing serial port before baudrate switch: %w", err)
	}
	s.port = nil

	return s.open(baud)
}

// RequiresDeviceAddress reports false: a serial link is point-to-point.
func (s *Serial) RequiresDeviceAddress() bool {
	return false
}

func (s *Serial) open(baud int) error {
	port, err := serial.OpenPort(&serial.Config{
		Name:        s.portName,
		Baud:        baud,
		Size:        7,
		Parity:      serial.ParityEven,
		StopBits:    serial.Stop1,
		ReadTimeout: s.timeout,
	})
	if err != nil {
		return fmt.Errorf("transport: opening serial port %s: %w", s.portName, err)
	}

	s.port = port
	s.baudrate = baud
	s.logger.Debug("serial port opened", "port", s.portName, "baudrate", baud)

	return nil
}
