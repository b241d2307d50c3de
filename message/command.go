package message

import "fmt"

// Command identifiers.
const (
	// CmdPassword presents a password to the device.
	CmdPassword byte = 'P'
	// CmdWrite writes a value.
	CmdWrite byte = 'W'
	// CmdRead reads a value.
	CmdRead byte = 'R'
	// CmdExecute executes a device function.
	CmdExecute byte = 'E'
	// CmdBreak terminates the session.
	CmdBreak byte = 'B'
)

// CommandMessage instructs the device to perform an operation in programming
// mode: SOH {command}{type} [STX {data set}] ETX BCC. The data set is nil for
// commands that carry no data.
type CommandMessage struct {
	Command     byte
	CommandType byte
	DataSet     *DataSet
}

// NewCommandMessage validates the command and command type identifiers and
// builds the message.
func NewCommandMessage(command, commandType byte, dataSet *DataSet) (*CommandMessage, error) {
	switch command {
	case CmdPassword, CmdWrite, CmdRead, CmdExecute, CmdBreak:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidCommand, command)
	}
	if commandType < '0' || commandType > '9' {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCommandType, commandType)
	}

	return &CommandMessage{Command: command, CommandType: commandType, DataSet: dataSet}, nil
}

// NewSingleReadCommand builds the R1 command that reads one value.
// additionalData selects what the device returns for the address and may be
// empty.
func NewSingleReadCommand(address, additionalData string) *CommandMessage {
	return &CommandMessage{
		Command:     CmdRead,
		CommandType: '1',
		DataSet:     &DataSet{Address: address, Value: additionalData},
	}
}

// NewSingleWriteCommand builds the W1 command that writes one value.
func NewSingleWriteCommand(address, value string) *CommandMessage {
	return &CommandMessage{
		Command:     CmdWrite,
		CommandType: '1',
		DataSet:     &DataSet{Address: address, Value: value},
	}
}

// NewBreakCommand builds the B0 command that terminates the session.
func NewBreakCommand() *CommandMessage {
	return &CommandMessage{Command: CmdBreak, CommandType: '0'}
}

// Representation returns the framed command, BCC appended.
func (m *CommandMessage) Representation() string {
	buf := []byte{SOH, m.Command, m.CommandType}
	if m.DataSet != nil {
		buf = append(buf, STX)
		buf = append(buf, m.DataSet.Representation()...)
	}
	buf = append(buf, ETX)

	return addBCCText(string(buf))
}

// MarshalBinary returns the latin-1 encoding of the representation.
func (m *CommandMessage) MarshalBinary() ([]byte, error) {
	return EncodeLatin1(m.Representation())
}

// ParseCommandMessage parses a framed command and validates its checksum.
// A bare-ETX body parses to a nil data set.
func ParseCommandMessage(data string) (*CommandMessage, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("%w: command message too short: %q", ErrParse, data)
	}
	if !validateBCCText(data) {
		return nil, fmt.Errorf("%w: in command message %q", ErrChecksumMismatch, data)
	}

	msg := data[:len(data)-1]
	header, body := msg[:3], msg[3:]

	var dataSet *DataSet
	if len(body) > 1 {
		ds, err := ParseDataSet(body[1 : len(body)-1])
		if err != nil {
			return nil, err
		}
		dataSet = &ds
	}

	return NewCommandMessage(header[1], header[2], dataSet)
}
