package transport

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

// pipeTransport adapts one end of a net.Pipe to the Transport interface so
// reader tests can script the device side on the remote end.
type pipeTransport struct {
	conn    net.Conn
	timeout time.Duration
}

var _ Transport = (*pipeTransport)(nil)

// newPipeTransport creates a pipe-backed transport and returns the remote end
// for test simulation.
func newPipeTransport(t *testing.T) (*pipeTransport, net.Conn) {
	t.Helper()

	local, remote := net.Pipe()
	t.Cleanup(func() {
		_ = local.Close()
		_ = remote.Close()
	})

	return &pipeTransport{conn: local, timeout: 200 * time.Millisecond}, remote
}

func (p *pipeTransport) Connect() error {
	return nil
}

func (p *pipeTransport) Disconnect() error {
	return p.conn.Close()
}

func (p *pipeTransport) Send(data []byte) error {
	_, err := p.conn.Write(data)

	return err
}

func (p *pipeTransport) Recv(n int) ([]byte, error) {
	if err := p.conn.SetReadDeadline(time.Now().Add(p.timeout)); err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	read, err := p.conn.Read(buf)
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return nil, ErrReadTimeout
		}

		return nil, err
	}

	return buf[:read], nil
}

func (p *pipeTransport) SwitchBaudrate(int) error {
	return nil
}

func (p *pipeTransport) RequiresDeviceAddress() bool {
	return false
}

// readOneByte reads exactly 1 byte from r. Errors are reported with Errorf
// so the helper stays safe inside the remote goroutines.
func readOneByte(t *testing.T, r io.Reader) byte {
	t.Helper()

	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		t.Errorf("readOneByte: %v", err)

		return 0
	}

	return buf[0]
}

// mustWrite writes data to w, reporting failure without stopping the
// goroutine it runs on.
func mustWrite(t *testing.T, w io.Writer, data []byte) {
	t.Helper()

	if _, err := w.Write(data); err != nil {
		t.Errorf("mustWrite: %v", err)
	}
}
