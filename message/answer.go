package message

import "fmt"

// AnswerDataMessage is the device's data response to a command:
// STX {data block} ETX BCC.
type AnswerDataMessage struct {
	DataBlock DataBlock

	data []DataSet
}

// NewAnswerDataMessage builds an answer over the given block.
func NewAnswerDataMessage(block DataBlock) *AnswerDataMessage {
	return &AnswerDataMessage{DataBlock: block}
}

// Data returns all data sets of the block in order. The flat view is computed
// on first use and cached for the lifetime of the message.
func (m *AnswerDataMessage) Data() []DataSet {
	if m.data == nil {
		m.data = flattenBlock(m.DataBlock)
	}

	return m.data
}

// Representation returns the framed answer, BCC appended.
func (m *AnswerDataMessage) Representation() string {
	buf := []byte{STX}
	buf = append(buf, m.DataBlock.Representation()...)
	buf = append(buf, ETX)

	return addBCCText(string(buf))
}

// MarshalBinary returns the latin-1 encoding of the representation.
func (m *AnswerDataMessage) MarshalBinary() ([]byte, error) {
	return EncodeLatin1(m.Representation())
}

// ParseAnswerDataMessage parses a framed answer and validates its checksum.
// Empty input parses to an answer with an empty block; a bare ACK reply from
// a device reaches this parser as zero collected bytes.
func ParseAnswerDataMessage(data string) (*AnswerDataMessage, error) {
	inner := ""
	if len(data) > 0 {
		if !validateBCCText(data) {
			return nil, fmt.Errorf("%w: in answer message %q", ErrChecksumMismatch, data)
		}
		if n := len(data); n >= 3 {
			inner = data[1 : n-2]
		}
	}

	block, err := ParseDataBlock(inner)
	if err != nil {
		return nil, err
	}

	return NewAnswerDataMessage(block), nil
}

// ReadoutDataMessage is the device's response to the readout mode request:
// STX {data block} ! \r\n ETX BCC.
type ReadoutDataMessage struct {
	DataBlock DataBlock

	data []DataSet
}

// NewReadoutDataMessage builds a readout over the given block.
func NewReadoutDataMessage(block DataBlock) *ReadoutDataMessage {
	return &ReadoutDataMessage{DataBlock: block}
}

// Data returns all data sets of the block in order. The flat view is computed
// on first use and cached for the lifetime of the message.
func (m *ReadoutDataMessage) Data() []DataSet {
	if m.data == nil {
		m.data = flattenBlock(m.DataBlock)
	}

	return m.data
}

// Representation returns the framed readout, BCC appended.
func (m *ReadoutDataMessage) Representation() string {
	buf := []byte{STX}
	buf = append(buf, m.DataBlock.Representation()...)
	buf = append(buf, EndChar)
	buf = append(buf, LineEnd...)
	buf = append(buf, ETX)

	return addBCCText(string(buf))
}

// MarshalBinary returns the latin-1 encoding of the representation.
func (m *ReadoutDataMessage) MarshalBinary() ([]byte, error) {
	return EncodeLatin1(m.Representation())
}

// ParseReadoutDataMessage parses a framed readout and validates its checksum.
func ParseReadoutDataMessage(data string) (*ReadoutDataMessage, error) {
	if !validateBCCText(data) {
		return nil, fmt.Errorf("%w: in readout message %q", ErrChecksumMismatch, data)
	}

	inner := ""
	if n := len(data); n >= 6 {
		inner = data[1 : n-5]
	}

	block, err := ParseDataBlock(inner)
	if err != nil {
		return nil, err
	}

	return NewReadoutDataMessage(block), nil
}

// flattenBlock collects the data sets of every line in order. The result is
// never nil so the lazy caches compute at most once.
func flattenBlock(block DataBlock) []DataSet {
	sets := make([]DataSet, 0, len(block.DataLines))
	for _, line := range block.DataLines {
		sets = append(sets, line.DataSets...)
	}

	return sets
}
