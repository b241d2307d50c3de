package message

import "errors"

// Parse and validation errors. Failures carry context and wrap one of these
// sentinels for errors.Is checks.
var (
	// ErrParse indicates input text that does not match any message shape.
	ErrParse = errors.New("message: cannot parse data")

	// ErrChecksumMismatch indicates that the trailing block check character of
	// a frame does not match the checksum computed over the frame contents.
	ErrChecksumMismatch = errors.New("message: block check character mismatch")

	// ErrMissingFrameMarker indicates a frame without SOH or STX, leaving no
	// position to compute the checksum from.
	ErrMissingFrameMarker = errors.New("message: no SOH or STX marker found")

	// ErrInvalidCommand indicates a command identifier outside P, W, R, E and B.
	ErrInvalidCommand = errors.New("message: invalid command identifier")

	// ErrInvalidCommandType indicates a command type identifier outside 0-9.
	ErrInvalidCommandType = errors.New("message: invalid command type identifier")

	// ErrNotLatin1 indicates a string that cannot be encoded with one byte per
	// character.
	ErrNotLatin1 = errors.New("message: string not encodable as latin-1")
)
