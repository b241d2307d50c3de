package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Serial tests run without hardware and cover construction and the closed
// port guards. Exercising a live port needs a pty or loopback adapter.

func TestNewSerial(t *testing.T) {
	tr, err := NewSerial("/dev/ttyUSB0")
	require.NoError(t, err)
	assert.Equal(t, DefaultSerialTimeout, tr.timeout)
	assert.False(t, tr.RequiresDeviceAddress())
}

func TestNewSerial_WithTimeout(t *testing.T) {
	tr, err := NewSerial("/dev/ttyUSB0", WithSerialTimeout(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, tr.timeout)
}

func TestNewSerial_InvalidTimeout(t *testing.T) {
	_, err := NewSerial("/dev/ttyUSB0", WithSerialTimeout(0))
	assert.Error(t, err)

	_, err = NewSerial("/dev/ttyUSB0", WithSerialTimeout(-time.Second))
	assert.Error(t, err)
}

func TestNewSerial_NilLogger(t *testing.T) {
	_, err := NewSerial("/dev/ttyUSB0", WithSerialLogger(nil))
	assert.Error(t, err)
}

func TestSerial_OperationsBeforeConnect(t *testing.T) {
	tr, err := NewSerial("/dev/ttyUSB0")
	require.NoError(t, err)

	assert.ErrorIs(t, tr.Send([]byte("x")), ErrClosed)

	_, err = tr.Recv(1)
	assert.ErrorIs(t, err, ErrClosed)

	assert.ErrorIs(t, tr.SwitchBaudrate(9600), ErrClosed)
	assert.ErrorIs(t, tr.Disconnect(), ErrClosed)
}

func TestSerial_ConnectMissingPort(t *testing.T) {
	tr, err := NewSerial("/dev/nonexistent-meter-port")
	require.NoError(t, err)

	assert.Error(t, tr.Connect())
}
