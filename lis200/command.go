package lis200

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pwitab/iec62056-21/message"
)

// Archive readout bounds and defaults.
const (
	DefaultPosition = 1
	MinPosition     = 1
	MaxPosition     = 99

	DefaultAttribute byte = '0'

	DefaultRowsPerBlock = 10
	MinRowsPerBlock     = 1
)

// TimestampLayout is the timestamp format LIS-200 devices read and write.
const TimestampLayout = "2006-01-02,15:04:05"

// ArchiveReadoutCommand reads a range of rows from a device archive. The
// range is controlled by a value position, usually the timestamp column, and
// its lower and upper limits. Attributes other than '0' read metadata about
// the archive columns instead of values and answer with a single row.
type ArchiveReadoutCommand struct {
	Archive       int
	Attribute     byte
	Position      int
	Start         string
	End           string
	PartialBlocks bool
	RowsPerBlock  int
}

var _ message.Message = (*ArchiveReadoutCommand)(nil)

// ArchiveOption configures an ArchiveReadoutCommand.
type ArchiveOption interface {
	apply(*ArchiveReadoutCommand) error
}

type archiveOptFunc func(*ArchiveReadoutCommand) error

func (f archiveOptFunc) apply(c *ArchiveReadoutCommand) error {
	return f(c)
}

// WithAttribute selects which archive attribute to read: '0' for values,
// '1'-'9' for column metadata, 'A' for the row count of the range.
func WithAttribute(attribute byte) ArchiveOption {
	return archiveOptFunc(func(c *ArchiveReadoutCommand) error {
		if (attribute < '0' || attribute > '9') && attribute != 'A' {
			return fmt.Errorf("lis200: invalid archive attribute %q", attribute)
		}
		c.Attribute = attribute

		return nil
	})
}

// WithPosition sets the column of the controlling value, 1 based.
func WithPosition(position int) ArchiveOption {
	return archiveOptFunc(func(c *ArchiveReadoutCommand) error {
		if position < MinPosition || position > MaxPosition {
			return fmt.Errorf("lis200: position %d out of range [%d, %d]",
				position, MinPosition, MaxPosition)
		}
		c.Position = position

		return nil
	})
}

// WithRange bounds the readout by the controlling value. Zero times leave
// the corresponding limit open, so the oldest or newest row applies.
func WithRange(start, end time.Time) ArchiveOption {
	return archiveOptFunc(func(c *ArchiveReadoutCommand) error {
		if !start.IsZero() {
			c.Start = FormatTimestamp(start)
		}
		if !end.IsZero() {
			c.End = FormatTimestamp(end)
		}

		return nil
	})
}

// WithPartialBlocks requests the answer in partial blocks of rowsPerBlock
// rows, acknowledged one by one. Large archives do not fit a single frame.
func WithPartialBlocks(rowsPerBlock int) ArchiveOption {
	return archiveOptFunc(func(c *ArchiveReadoutCommand) error {
		if rowsPerBlock < MinRowsPerBlock {
			return fmt.Errorf("lis200: rows per block %d out of range [%d, )",
				rowsPerBlock, MinRowsPerBlock)
		}
		c.PartialBlocks = true
		c.RowsPerBlock = rowsPerBlock

		return nil
	})
}

// NewArchiveReadout builds a readout command for the archive number.
func NewArchiveReadout(archive int, opts ...ArchiveOption) (*ArchiveReadoutCommand, error) {
	if archive < 1 {
		return nil, fmt.Errorf("lis200: archive number %d out of range [1, )", archive)
	}

	c := &ArchiveReadoutCommand{
		Archive:      archive,
		Attribute:    DefaultAttribute,
		Position:     DefaultPosition,
		RowsPerBlock: DefaultRowsPerBlock,
	}

	for _, opt := range opts {
		if err := opt.apply(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Representation returns the framed command, BCC appended.
func (m *ArchiveReadoutCommand) Representation() string {
	command := "R1"
	rows := ""
	if m.PartialBlocks {
		command = "R3"
		rows = strconv.Itoa(m.RowsPerBlock)
	}

	rep := fmt.Sprintf("%c%s%c%d:V.%c(%d;%s;%s;%s)%c",
		message.SOH, command, message.STX, m.Archive, m.Attribute,
		m.Position, m.Start, m.End, rows, message.ETX)

	buf := []byte(rep)
	bcc := message.CalculateBCC(buf[1:])

	return string(append(buf, bcc))
}

// MarshalBinary returns the latin-1 encoding of the representation.
func (m *ArchiveReadoutCommand) MarshalBinary() ([]byte, error) {
	return message.EncodeLatin1(m.Representation())
}

// FormatTimestamp renders t in the LIS-200 timestamp format. The zone is
// dropped; the protocol carries none.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp reads a LIS-200 timestamp in loc, or UTC when loc is nil.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	t, err := time.ParseInLocation(TimestampLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("lis200: parsing timestamp %q: %w", s, err)
	}

	return t, nil
}
