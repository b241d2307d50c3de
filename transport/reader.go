package transport

import (
	"fmt"

	"github.com/pwitab/iec62056-21/logger"
	"github.com/pwitab/iec62056-21/message"
)

// Retransmission limits for frames that fail their checksum.
const (
	// DefaultRetryLimit is the default number of retransmissions requested
	// before a frame read fails.
	DefaultRetryLimit = 3
	// MinRetryLimit disables retransmission requests entirely.
	MinRetryLimit = 0
	// MaxRetryLimit caps retransmission requests.
	MaxRetryLimit = 10
)

// Reader assembles logical frames from the byte stream of a Transport. It
// validates per-packet checksums, acknowledges partial blocks and reassembles
// them into the single frame the device would have sent unblocked.
type Reader struct {
	transport  Transport
	retryLimit int
	logger     logger.Logger
}

// ReaderOption configures a Reader.
type ReaderOption interface {
	apply(*Reader) error
}

type readerOptFunc func(*Reader) error

func (f readerOptFunc) apply(r *Reader) error {
	return f(r)
}

// WithRetryLimit sets how many retransmissions of a checksum-invalid packet
// are requested before the read fails with ErrRetriesExhausted.
func WithRetryLimit(limit int) ReaderOption {
	return readerOptFunc(func(r *Reader) error {
		if limit < MinRetryLimit || limit > MaxRetryLimit {
			return fmt.Errorf("transport: retry limit %d out of range [%d, %d]",
				limit, MinRetryLimit, MaxRetryLimit)
		}
		r.retryLimit = limit

		return nil
	})
}

// WithReaderLogger sets the logger for frame-level diagnostics.
func WithReaderLogger(l logger.Logger) ReaderOption {
	return readerOptFunc(func(r *Reader) error {
		if l == nil {
			return fmt.Errorf("transport: reader logger cannot be nil")
		}
		r.logger = l

		return nil
	})
}

// NewReader creates a frame reader over t.
func NewReader(t Transport, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		transport:  t,
		retryLimit: DefaultRetryLimit,
		logger:     logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ReadFrame reads one logical frame.
//
// Bytes before the first start marker (SOH or STX) are discarded. Each packet
// runs to an end marker (ETX, EOT, ACK or NACK) and, when it carried data, one
// further checksum byte. SOH frames are command-type replies and return as-is,
// checksum byte included but unvalidated; the message parser validates it.
// EOT packets are partial blocks: each one is checksum-validated, ACKed,
// stripped of its trailer and appended to the frame, until a final ETX packet
// arrives. A checksum failure triggers a NACK and a bounded retransmission of
// the same packet. For reassembled frames the trailing checksum is recomputed
// over the whole frame so the result parses like an unblocked message. An end
// marker ACK or NACK before any start marker is a bare control reply and ends
// the read.
func (r *Reader) ReadFrame() ([]byte, error) {
	var total []byte
	packets := 0
	retries := 0
	started := false
	var startChar byte

	for {
		packet, endChar, err := r.readPacket(&started, &startChar)
		if err != nil {
			return nil, err
		}

		if startChar == message.SOH {
			// Command-type reply, likely a password challenge.
			r.logger.Debug("command frame received", "length", len(packet))

			return append(total, packet...), nil
		}

		switch endChar {
		case message.EOT:
			// Partial block.
			if !message.ValidateBCC(packet) {
				if err := r.rejectPacket(&retries, packet); err != nil {
					return nil, err
				}
				continue
			}
			if err := r.sendControl(message.ACK); err != nil {
				return nil, err
			}
			packets++
			// Drop checksum and EOT, terminate the line.
			packet = append(packet[:len(packet)-2], message.LineEnd...)
			if packets > 1 {
				packet = packet[1:] // leading STX
			}
			total = append(total, packet...)
			r.logger.Debug("partial block accepted", "packets", packets, "totalLength", len(total))

		case message.ETX:
			// Final or only packet.
			if !message.ValidateBCC(packet) {
				if err := r.rejectPacket(&retries, packet); err != nil {
					return nil, err
				}
				continue
			}
			packets++
			if packets > 1 {
				packet = packet[1:] // leading STX
			}
			total = append(total, packet...)
			if packets > 1 {
				// Per-packet checksums were verified along the way; replace
				// the last one so the reassembled frame validates as a whole.
				reassembled, err := message.AddBCC(total[:len(total)-1])
				if err != nil {
					return nil, fmt.Errorf("transport: reassembling partial blocks: %w", err)
				}
				total = reassembled
			}
			r.logger.Debug("frame complete", "packets", packets, "length", len(total))

			return total, nil

		case message.ACK, message.NACK:
			// Bare control reply.
			return total, nil
		}
	}
}

// ReadDelimited collects bytes from the first occurrence of startChar through
// endChar inclusive, discarding leading noise. Unframed replies such as the
// identification message are read this way.
func (r *Reader) ReadDelimited(startChar, endChar byte) ([]byte, error) {
	var data []byte
	started := false

	for {
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}

		if !started && b == startChar {
			started = true
		}
		if started {
			data = append(data, b)
			if b == endChar {
				return data, nil
			}
		}
	}
}

// readPacket collects one packet: bytes through an end marker, plus the
// checksum byte when the packet carried data. The started flag and the start
// marker persist across the packets of one frame.
func (r *Reader) readPacket(started *bool, startChar *byte) ([]byte, byte, error) {
	var packet []byte

	for {
		b, err := r.readByte()
		if err != nil {
			return nil, 0, err
		}

		if isEndChar(b) {
			if *started {
				packet = append(packet, b)
			}
			if len(packet) > 0 {
				bcc, err := r.readByte()
				if err != nil {
					return nil, 0, err
				}
				packet = append(packet, bcc)
			}

			return packet, b, nil
		}

		if !*started && isStartChar(b) {
			*started = true
			*startChar = b
		}
		if *started {
			packet = append(packet, b)
		}
	}
}

// rejectPacket requests a retransmission and enforces the retry limit.
func (r *Reader) rejectPacket(retries *int, packet []byte) error {
	r.logger.Debug("invalid checksum, requesting retransmission",
		"retries", *retries, "packetLength", len(packet))

	if err := r.sendControl(message.NACK); err != nil {
		return err
	}

	*retries++
	if *retries > r.retryLimit {
		return fmt.Errorf("%w: after %d attempts", ErrRetriesExhausted, *retries)
	}

	return nil
}

func (r *Reader) sendControl(c byte) error {
	return r.transport.Send([]byte{c})
}

func (r *Reader) readByte() (byte, error) {
	data, err := r.transport.Recv(1)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, ErrReadTimeout
	}

	return data[0], nil
}

func isStartChar(b byte) bool {
	return b == message.SOH || b == message.STX
}

func isEndChar(b byte) bool {
	return b == message.ETX || b == message.EOT || b == message.ACK || b == message.NACK
}
