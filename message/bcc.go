package message

import (
	"bytes"
	"strings"

	"github.com/pwitab/iec62056-21/internal/util"
)

// CalculateBCC computes the block check character over data. Each byte is
// masked to 7 bits before being XOR-folded and the result is masked to 7 bits,
// matching the parity-stripped view of a 7E1 serial line.
func CalculateBCC(data []byte) byte {
	var bcc byte
	for _, b := range data {
		bcc ^= b & 0x7F
	}

	return bcc & 0x7F
}

// AddBCC returns frame with its block check character appended. The checksum
// covers the bytes after the last SOH, or after the last STX when no SOH is
// present, through the end of the frame, terminator included. A frame without
// either marker produces ErrMissingFrameMarker.
func AddBCC(frame []byte) ([]byte, error) {
	start := bytes.LastIndexByte(frame, SOH)
	if start == -1 {
		start = bytes.LastIndexByte(frame, STX)
	}
	if start == -1 {
		return nil, ErrMissingFrameMarker
	}

	out := util.CloneSlice(frame, len(frame)+1)
	out[len(frame)] = CalculateBCC(frame[start+1:])

	return out, nil
}

// ValidateBCC reports whether the last byte of frame is the correct block
// check character for the bytes that precede it.
func ValidateBCC(frame []byte) bool {
	if len(frame) < 2 {
		return false
	}
	checked, err := AddBCC(frame[:len(frame)-1])
	if err != nil {
		return false
	}

	return checked[len(checked)-1] == frame[len(frame)-1]
}

// calculateBCCText is CalculateBCC over protocol text. Masking each rune to
// 7 bits makes it byte-for-byte identical to the binary computation for all
// latin-1 text.
func calculateBCCText(s string) byte {
	var bcc byte
	for _, r := range s {
		bcc ^= byte(r & 0x7F)
	}

	return bcc & 0x7F
}

// addBCCText appends the block check character to protocol text. Message
// representations always embed a marker, so a missing marker leaves the text
// unchanged rather than failing.
func addBCCText(s string) string {
	start := strings.LastIndexByte(s, SOH)
	if start == -1 {
		start = strings.LastIndexByte(s, STX)
	}
	if start == -1 {
		return s
	}

	return s + string(rune(calculateBCCText(s[start+1:])))
}

// validateBCCText reports whether the last character of s is the correct
// block check character for the preceding text.
func validateBCCText(s string) bool {
	if len(s) < 2 {
		return false
	}

	return addBCCText(s[:len(s)-1]) == s
}
