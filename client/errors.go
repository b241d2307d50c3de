package client

import "errors"

var (
	// ErrDeviceAddressRequired indicates the transport addresses meters
	// explicitly but no device address was configured.
	ErrDeviceAddressRequired = errors.New("client: transport requires a device address")
	// ErrNotStarted indicates an operation that needs the identification
	// exchange was called before Startup.
	ErrNotStarted = errors.New("client: session not started")
	// ErrInvalidMode indicates an unsupported protocol mode.
	ErrInvalidMode = errors.New("client: invalid protocol mode")
	// ErrUnknownBaudrateChar indicates the device proposed a baudrate
	// character outside the mode C table.
	ErrUnknownBaudrateChar = errors.New("client: unknown baudrate character")
	// ErrNoData indicates a read returned no data sets.
	ErrNoData = errors.New("client: no data returned")
	// ErrTooManyValues indicates a single-value read returned several
	// data sets.
	ErrTooManyValues = errors.New("client: more than one value returned")
	// ErrWriteRejected indicates the device answered a write with NACK.
	ErrWriteRejected = errors.New("client: write request rejected")
	// ErrUnexpectedResponse indicates a reply of the wrong message type.
	ErrUnexpectedResponse = errors.New("client: unexpected response")
)
