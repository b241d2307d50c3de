package message

import "fmt"

// RequestMessage opens a session: /?{device address}!\r\n. The address is
// empty on point-to-point links.
type RequestMessage struct {
	DeviceAddress string
}

// Representation returns the protocol text of the request.
func (m RequestMessage) Representation() string {
	return fmt.Sprintf("%c%c%s%c%s", StartChar, RequestChar, m.DeviceAddress, EndChar, LineEnd)
}

// MarshalBinary returns the latin-1 encoding of the representation.
func (m RequestMessage) MarshalBinary() ([]byte, error) {
	return EncodeLatin1(m.Representation())
}

// ParseRequestMessage parses /?{device address}!\r\n.
func ParseRequestMessage(data string) (RequestMessage, error) {
	if len(data) < 5 || data[0] != StartChar || data[1] != RequestChar {
		return RequestMessage{}, fmt.Errorf("%w: not a request message: %q", ErrParse, data)
	}

	return RequestMessage{DeviceAddress: data[2 : len(data)-3]}, nil
}

// IdentificationMessage is the device's reply to a request:
// /{manufacturer}{baud char}\{identification}\r\n. A lowercase third
// manufacturer character signals that the device supports the short reaction
// time.
type IdentificationMessage struct {
	Identification         string
	Manufacturer           string
	SwitchoverBaudrateChar byte
}

// Representation returns the protocol text of the identification.
func (m IdentificationMessage) Representation() string {
	return fmt.Sprintf("%c%s%c\\%s%s",
		StartChar, m.Manufacturer, m.SwitchoverBaudrateChar, m.Identification, LineEnd)
}

// MarshalBinary returns the latin-1 encoding of the representation.
func (m IdentificationMessage) MarshalBinary() ([]byte, error) {
	return EncodeLatin1(m.Representation())
}

// ParseIdentificationMessage parses an identification reply.
func ParseIdentificationMessage(data string) (IdentificationMessage, error) {
	if len(data) < 8 || data[0] != StartChar {
		return IdentificationMessage{}, fmt.Errorf("%w: not an identification message: %q", ErrParse, data)
	}

	return IdentificationMessage{
		Identification:         data[6 : len(data)-2],
		Manufacturer:           data[1:4],
		SwitchoverBaudrateChar: data[4],
	}, nil
}

// AckOptionSelectMessage acknowledges an identification and selects the
// protocol, baudrate and mode for the rest of the session:
// ACK {protocol}{baud}{mode}\r\n.
type AckOptionSelectMessage struct {
	ProtocolChar byte
	BaudChar     byte
	ModeChar     byte
}

// NewAckOptionSelectMessage builds the message with the normal protocol
// procedure ('0').
func NewAckOptionSelectMessage(baudChar, modeChar byte) AckOptionSelectMessage {
	return AckOptionSelectMessage{ProtocolChar: '0', BaudChar: baudChar, ModeChar: modeChar}
}

// Representation returns the protocol text of the option select.
func (m AckOptionSelectMessage) Representation() string {
	return string([]byte{ACK, m.ProtocolChar, m.BaudChar, m.ModeChar}) + LineEnd
}

// MarshalBinary returns the latin-1 encoding of the representation.
func (m AckOptionSelectMessage) MarshalBinary() ([]byte, error) {
	return EncodeLatin1(m.Representation())
}

// ParseAckOptionSelectMessage parses an option select message.
func ParseAckOptionSelectMessage(data string) (AckOptionSelectMessage, error) {
	if len(data) < 6 || data[0] != ACK {
		return AckOptionSelectMessage{}, fmt.Errorf("%w: not an option select message: %q", ErrParse, data)
	}

	return AckOptionSelectMessage{ProtocolChar: data[1], BaudChar: data[2], ModeChar: data[3]}, nil
}
