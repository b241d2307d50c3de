package client

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pwitab/iec62056-21/transport"
)

// pipeTransport adapts one end of a net.Pipe to the Transport interface and
// records baudrate switches, so tests can script the device side on the
// remote end.
type pipeTransport struct {
	conn            net.Conn
	timeout         time.Duration
	requiresAddress bool
	baudSwitches    []int
}

var _ transport.Transport = (*pipeTransport)(nil)

func newPipeTransport(t *testing.T) (*pipeTransport, net.Conn) {
	t.Helper()

	local, remote := net.Pipe()
	t.Cleanup(func() {
		_ = local.Close()
		_ = remote.Close()
	})

	return &pipeTransport{conn: local, timeout: 500 * time.Millisecond}, remote
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
			return nil, transport.ErrReadTimeout
		}

		return nil, err
	}

	return buf[:read], nil
}

func (p *pipeTransport) SwitchBaudrate(baud int) error {
	p.baudSwitches = append(p.baudSwitches, baud)

	return nil
}

func (p *pipeTransport) RequiresDeviceAddress() bool {
	return p.requiresAddress
}

// expectBytes reads exactly len(want) bytes from r and compares them.
func expectBytes(t *testing.T, r io.Reader, want []byte) {
	t.Helper()

	buf := make([]byte, len(want))
	if _, err := io.ReadFull(r, buf); err != nil {
		t.Errorf("expectBytes: %v", err)

		return
	}
	assert.Equal(t, want, buf)
}

// mustWrite writes data to w, failing the test on error.
func mustWrite(t *testing.T, w io.Writer, data []byte) {
	t.Helper()

	if _, err := w.Write(data); err != nil {
		t.Errorf("mustWrite: %v", err)
	}
}

// drainNulsThenExpect skips leading wake-up null bytes, then compares the
// next len(want) bytes. Returns how many nulls were skipped.
func drainNulsThenExpect(t *testing.T, r io.Reader, want []byte) int {
	t.Helper()

	nulls := 0
	buf := make([]byte, 1)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			t.Errorf("drainNulsThenExpect: %v", err)

			return nulls
		}
		if buf[0] == 0x00 {
			nulls++
			continue
		}
		break
	}

	rest := make([]byte, len(want)-1)
	if _, err := io.ReadFull(r, rest); err != nil {
		t.Errorf("drainNulsThenExpect: %v", err)

		return nulls
	}
	assert.Equal(t, want, append(buf[:1], rest...))

	return nulls
}

// shortenBatteryTiming compresses the wake sequence so tests finish fast.
func shortenBatteryTiming(t *testing.T) {
	t.Helper()

	wake, interval, settle := batteryWakeDuration, batteryWakeInterval, batterySettleDuration
	batteryWakeDuration = 30 * time.Millisecond
	batteryWakeInterval = 10 * time.Millisecond
	batterySettleDuration = time.Millisecond
	t.Cleanup(func() {
		batteryWakeDuration, batteryWakeInterval, batterySettleDuration = wake, interval, settle
	})
}

// startedClient returns a client whose startup exchange already ran against
// the scripted identification.
func startedClient(t *testing.T, identification string) (*Client, *pipeTransport, net.Conn) {
	t.Helper()

	pt, remote := newPipeTransport(t)
	c, err := NewClient(pt)
	if err != nil {
		t.Fatalf("startedClient: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		expectBytes(t, remote, []byte("/?!\r\n"))
		mustWrite(t, remote, []byte(identification))
	}()

	if err := c.Startup(); err != nil {
		t.Fatalf("startedClient: %v", err)
	}
	<-done

	return c, pt, remote
}
