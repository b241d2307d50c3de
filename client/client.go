package client

import (
	"fmt"
	"time"

	"github.com/pwitab/iec62056-21/logger"
	"github.com/pwitab/iec62056-21/message"
	"github.com/pwitab/iec62056-21/transport"
)

// Reaction times from the protocol timing rules. A device announcing a
// lowercase third manufacturer letter accepts the short variant.
const (
	standardReactionTime = 200 * time.Millisecond
	shortReactionTime    = 20 * time.Millisecond
)

// Battery powered devices wake on a stream of null bytes sent over
// batteryWakeDuration, then need batterySettleDuration before the request
// message. Package variables so tests can shorten them.
var (
	batteryWakeDuration   = 2200 * time.Millisecond
	batteryWakeInterval   = 200 * time.Millisecond
	batterySettleDuration = 1500 * time.Millisecond
)

// baudratesModeC maps the baudrate characters of mode C to rates in baud.
var baudratesModeC = map[byte]int{
	'0': 300,
	'1': 600,
	'2': 1200,
	'3': 2400,
	'4': 4800,
	'5': 9600,
	'6': 19200,
}

// Client drives a mode C session against a single meter. It is not safe for
// concurrent use; run one session per transport.
type Client struct {
	transport transport.Transport
	reader    *transport.Reader
	logger    logger.Logger

	deviceAddress  string
	password       string
	batteryPowered bool
	retryLimit     int

	errorParser    ErrorParser
	explicitParser bool

	state                  SessionState
	identification         string
	manufacturerID         string
	switchoverBaudrateChar byte
	useShortReactionTime   bool
}

// NewClient wraps a transport in a session controller. Transports that
// address meters explicitly require WithDeviceAddress.
func NewClient(t transport.Transport, opts ...Option) (*Client, error) {
	c := &Client{
		transport:   t,
		password:    DefaultPassword,
		retryLimit:  transport.DefaultRetryLimit,
		logger:      logger.GetLogger(),
		errorParser: NoopErrorParser{},
		state:       StateNew,
	}

	for _, opt := range opts {
		if err := opt.apply(c); err != nil {
			return nil, err
		}
	}

	if t.RequiresDeviceAddress() && c.deviceAddress == "" {
		return nil, ErrDeviceAddressRequired
	}

	reader, err := transport.NewReader(t,
		transport.WithRetryLimit(c.retryLimit),
		transport.WithReaderLogger(c.logger),
	)
	if err != nil {
		return nil, err
	}
	c.reader = reader

	return c, nil
}

// Connect opens the underlying transport.
func (c *Client) Connect() error {
	return c.transport.Connect()
}

// Disconnect closes the underlying transport.
func (c *Client) Disconnect() error {
	return c.transport.Disconnect()
}

// Startup begins the session: it wakes battery powered devices, sends the
// request message and reads the identification reply. The proposed
// switchover baudrate, identification and manufacturer are stored on the
// client, and the effective error parser is resolved.
func (c *Client) Startup() error {
	if c.batteryPowered {
		if err := c.sendBatteryStartupSequence(); err != nil {
			return err
		}
	}

	if err := c.sendInitRequest(); err != nil {
		return err
	}

	ident, err := c.readIdentification()
	if err != nil {
		return err
	}

	c.identification = ident.Identification
	c.manufacturerID = ident.Manufacturer
	c.switchoverBaudrateChar = ident.SwitchoverBaudrateChar

	// A lowercase last manufacturer letter halves the reaction time class.
	if n := len(c.manufacturerID); n > 0 {
		last := c.manufacturerID[n-1]
		c.useShortReactionTime = last >= 'a' && last <= 'z'
	}

	c.resolveErrorParser()

	c.state = StateStarted
	c.logger.Info("session started",
		"identification", c.identification,
		"manufacturer", c.manufacturerID,
		"switchoverBaudrateChar", string(c.switchoverBaudrateChar),
		"shortReactionTime", c.useShortReactionTime)

	return nil
}

// AckWithOptionSelect acknowledges the identification and requests mode,
// using the baudrate the device proposed. Requires a completed Startup.
func (c *Client) AckWithOptionSelect(mode ProtocolMode) error {
	if c.switchoverBaudrateChar == 0 {
		return ErrNotStarted
	}

	modeChar, err := mode.controlChar()
	if err != nil {
		return fmt.Errorf("%w: %d", err, mode)
	}

	ack := message.NewAckOptionSelectMessage(c.switchoverBaudrateChar, modeChar)
	c.logger.Info("selecting mode", "mode", mode.String(), "baudChar", string(ack.BaudChar))
	if err := c.send(ack); err != nil {
		return err
	}
	c.rest(0)

	c.state = StateModeSelected

	return nil
}

// AccessProgrammingMode performs the full exchange up to programming mode
// and returns the password challenge to act on.
func (c *Client) AccessProgrammingMode() (*message.CommandMessage, error) {
	if err := c.Startup(); err != nil {
		return nil, err
	}
	if err := c.AckWithOptionSelect(ModeProgramming); err != nil {
		return nil, err
	}
	if err := c.switchBaudrate(); err != nil {
		return nil, err
	}

	response, err := c.ReadResponse()
	if err != nil {
		return nil, err
	}
	challenge, ok := response.(*message.CommandMessage)
	if !ok {
		return nil, fmt.Errorf("%w: expected password challenge, got %q",
			ErrUnexpectedResponse, response.Representation())
	}

	c.state = StateActive

	return challenge, nil
}

// StandardReadout performs the full exchange for the standard data readout
// and returns the parsed answer.
func (c *Client) StandardReadout() (*message.AnswerDataMessage, error) {
	if err := c.Startup(); err != nil {
		return nil, err
	}
	if err := c.AckWithOptionSelect(ModeReadout); err != nil {
		return nil, err
	}
	if err := c.switchBaudrate(); err != nil {
		return nil, err
	}

	response, err := c.ReadResponse()
	if err != nil {
		return nil, err
	}
	readout, ok := response.(*message.AnswerDataMessage)
	if !ok {
		return nil, fmt.Errorf("%w: expected data readout, got %q",
			ErrUnexpectedResponse, response.Representation())
	}

	c.state = StateActive

	return readout, nil
}

// SendPassword answers a password challenge. An empty password sends the
// configured one.
func (c *Client) SendPassword(password string) error {
	if password == "" {
		password = c.password
	}

	cmd, err := message.NewCommandMessage(message.CmdPassword, '1',
		&message.DataSet{Value: password})
	if err != nil {
		return err
	}
	c.logger.Info("sending password")

	return c.send(cmd)
}

// SendBreak terminates the session.
func (c *Client) SendBreak() error {
	c.logger.Info("sending break")
	if err := c.send(message.NewBreakCommand()); err != nil {
		return err
	}

	c.state = StateTerminated

	return nil
}

// ReadSingleValue reads one value from an address. Meters expect "1" as
// additional data for plain reads.
func (c *Client) ReadSingleValue(address, additionalData string) (message.DataSet, error) {
	request := message.NewSingleReadCommand(address, additionalData)
	c.logger.Info("reading value", "address", address)
	if err := c.send(request); err != nil {
		return message.DataSet{}, err
	}

	response, err := c.ReadResponse()
	if err != nil {
		return message.DataSet{}, err
	}
	answer, ok := response.(*message.AnswerDataMessage)
	if !ok {
		return message.DataSet{}, fmt.Errorf("%w: expected answer data, got %q",
			ErrUnexpectedResponse, response.Representation())
	}

	data := answer.Data()
	if len(data) > 1 {
		return message.DataSet{}, fmt.Errorf("%w: got %d", ErrTooManyValues, len(data))
	}
	if len(data) == 0 {
		return message.DataSet{}, ErrNoData
	}

	return data[0], nil
}

// WriteSingleValue writes one value to an address and waits for the one byte
// acknowledgement.
func (c *Client) WriteSingleValue(address, value string) error {
	request := message.NewSingleWriteCommand(address, value)
	c.logger.Info("writing value", "address", address)
	if err := c.send(request); err != nil {
		return err
	}

	reply, err := c.transport.Recv(1)
	if err != nil {
		return err
	}
	if len(reply) == 0 {
		return transport.ErrReadTimeout
	}

	switch reply[0] {
	case message.ACK:
		return nil
	case message.NACK:
		return fmt.Errorf("%w: address %s", ErrWriteRejected, address)
	default:
		return fmt.Errorf("%w: %#x to write request", ErrUnexpectedResponse, reply[0])
	}
}

// ReadResponse reads one framed reply. Command frames parse as a
// CommandMessage, anything else as an AnswerDataMessage checked by the
// error parser.
func (c *Client) ReadResponse() (message.Message, error) {
	data, err := c.reader.ReadFrame()
	if err != nil {
		return nil, err
	}

	text := message.DecodeLatin1(data)
	if len(data) > 0 && data[0] == message.SOH {
		return message.ParseCommandMessage(text)
	}

	answer, err := message.ParseAnswerDataMessage(text)
	if err != nil {
		return nil, err
	}
	if err := c.errorParser.CheckForErrors(answer); err != nil {
		return nil, err
	}

	return answer, nil
}

// State returns the session state.
func (c *Client) State() SessionState {
	return c.state
}

// Identification returns the identification string from Startup, empty
// before that.
func (c *Client) Identification() string {
	return c.identification
}

// ManufacturerID returns the three letter manufacturer code from Startup,
// empty before that.
func (c *Client) ManufacturerID() string {
	return c.manufacturerID
}

// SwitchoverBaudrate returns the baudrate the device proposed, 0 when the
// character is unknown or Startup has not run.
func (c *Client) SwitchoverBaudrate() int {
	return baudratesModeC[c.switchoverBaudrateChar]
}

// switchBaudrate moves the transport to the negotiated rate.
func (c *Client) switchBaudrate() error {
	baud, ok := baudratesModeC[c.switchoverBaudrateChar]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBaudrateChar, c.switchoverBaudrateChar)
	}

	if err := c.transport.SwitchBaudrate(baud); err != nil {
		return err
	}

	c.state = StateBaudSwitched

	return nil
}

// send marshals msg and writes it to the transport.
func (c *Client) send(msg message.Message) error {
	data, err := msg.MarshalBinary()
	if err != nil {
		return err
	}

	return c.transport.Send(data)
}

// sendInitRequest sends the request message. The device address is included
// only on transports where a single line carries several meters.
func (c *Client) sendInitRequest() error {
	request := message.RequestMessage{}
	if c.transport.RequiresDeviceAddress() {
		request.DeviceAddress = c.deviceAddress
	}

	c.logger.Debug("sending request message", "deviceAddress", request.DeviceAddress)
	if err := c.send(request); err != nil {
		return err
	}
	c.rest(0)

	return nil
}

// readIdentification reads the unframed identification reply.
func (c *Client) readIdentification() (message.IdentificationMessage, error) {
	data, err := c.reader.ReadDelimited(message.StartChar, '\n')
	if err != nil {
		return message.IdentificationMessage{}, err
	}

	return message.ParseIdentificationMessage(message.DecodeLatin1(data))
}

// sendBatteryStartupSequence streams null bytes to wake the device, then
// lets it settle.
func (c *Client) sendBatteryStartupSequence() error {
	c.logger.Info("sending battery startup sequence")

	deadline := time.Now().Add(batteryWakeDuration)
	for time.Now().Before(deadline) {
		if err := c.transport.Send([]byte{0x00}); err != nil {
			return err
		}
		c.rest(batteryWakeInterval)
	}
	c.rest(batterySettleDuration)

	return nil
}

// resolveErrorParser picks the parser for the session. An explicit option
// wins over the manufacturer registry; the no-op parser remains otherwise.
func (c *Client) resolveErrorParser() {
	if c.explicitParser {
		return
	}
	if p, ok := LookupErrorParser(c.manufacturerID); ok {
		c.errorParser = p
		c.logger.Debug("using registered error parser", "manufacturer", c.manufacturerID)
	}
}

// reactionTime returns the wait class the device accepts.
func (c *Client) reactionTime() time.Duration {
	if c.useShortReactionTime {
		return shortReactionTime
	}

	return standardReactionTime
}

// rest pauses between writes and reads so the device can parse. Zero means
// 1.25 times the reaction time.
func (c *Client) rest(d time.Duration) {
	if d <= 0 {
		d = c.reactionTime() * 5 / 4
	}
	time.Sleep(d)
}
