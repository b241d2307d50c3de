package message

import "fmt"

// Control characters of the protocol.
const (
	// SOH marks the start of a command message.
	SOH byte = 0x01
	// STX marks the start of a data block.
	STX byte = 0x02
	// ETX terminates a complete message and is covered by the checksum.
	ETX byte = 0x03
	// EOT terminates a partial data block; further blocks follow.
	EOT byte = 0x04
	// ACK acknowledges a correctly received block or accepted request.
	ACK byte = 0x06
	// NACK rejects a block and requests retransmission.
	NACK byte = 0x15
)

// Printable framing characters.
const (
	// StartChar opens request and identification messages.
	StartChar byte = '/'
	// RequestChar follows StartChar in a request message.
	RequestChar byte = '?'
	// EndChar closes the data portion of a readout.
	EndChar byte = '!'
)

// LineEnd terminates protocol lines.
const LineEnd = "\r\n"

// Message is implemented by all protocol messages and message components.
//
// Representation returns the protocol text of the message, including the
// block check character where the message shape defines one. MarshalBinary
// returns the latin-1 encoding of that text, ready to send on the wire.
type Message interface {
	Representation() string
	MarshalBinary() ([]byte, error)
}

var (
	_ Message = DataSet{}
	_ Message = DataLine{}
	_ Message = DataBlock{}
	_ Message = (*CommandMessage)(nil)
	_ Message = RequestMessage{}
	_ Message = IdentificationMessage{}
	_ Message = AckOptionSelectMessage{}
	_ Message = (*AnswerDataMessage)(nil)
	_ Message = (*ReadoutDataMessage)(nil)
)

// EncodeLatin1 encodes s with one byte per character, the character encoding
// the protocol mandates. Runes above U+00FF produce ErrNotLatin1.
func EncodeLatin1(s string) ([]byte, error) {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, fmt.Errorf("%w: %q", ErrNotLatin1, r)
		}
		buf = append(buf, byte(r))
	}
	return buf, nil
}

// DecodeLatin1 decodes one-byte-per-character data into a string. Bytes above
// 0x7F map to the runes U+0080 through U+00FF.
func DecodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
