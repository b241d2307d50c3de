package client

// SessionState tracks how far a meter session has progressed. The client
// records state for logging and the few guards that need it; it does not
// enforce a full state machine.
type SessionState int8

const (
	// StateNew means no communication has happened yet.
	StateNew SessionState = iota
	// StateStarted means the identification exchange completed.
	StateStarted
	// StateModeSelected means the option select was acknowledged.
	StateModeSelected
	// StateBaudSwitched means the transport runs at the negotiated rate.
	StateBaudSwitched
	// StateActive means the session is exchanging data or programming
	// commands.
	StateActive
	// StateTerminated means the break command was sent.
	StateTerminated
)

func (s SessionState) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateStarted:
		return "started"
	case StateModeSelected:
		return "mode-selected"
	case StateBaudSwitched:
		return "baud-switched"
	case StateActive:
		return "active"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ProtocolMode selects the session type requested in the option select
// message after identification.
type ProtocolMode int8

const (
	// ModeReadout requests the standard data readout.
	ModeReadout ProtocolMode = iota
	// ModeProgramming requests the programming session.
	ModeProgramming
	// ModeBinary requests the binary (HDLC) session.
	ModeBinary
	// ModeManufacturer6 through ModeManufacturer9 request manufacturer
	// specific sessions.
	ModeManufacturer6
	ModeManufacturer7
	ModeManufacturer8
	ModeManufacturer9
)

func (m ProtocolMode) String() string {
	switch m {
	case ModeReadout:
		return "readout"
	case ModeProgramming:
		return "programming"
	case ModeBinary:
		return "binary"
	case ModeManufacturer6:
		return "manufacturer6"
	case ModeManufacturer7:
		return "manufacturer7"
	case ModeManufacturer8:
		return "manufacturer8"
	case ModeManufacturer9:
		return "manufacturer9"
	default:
		return "invalid"
	}
}

// controlChar returns the mode character carried in the option select.
func (m ProtocolMode) controlChar() (byte, error) {
	switch m {
	case ModeReadout:
		return '0', nil
	case ModeProgramming:
		return '1', nil
	case ModeBinary:
		return '2', nil
	case ModeManufacturer6:
		return '6', nil
	case ModeManufacturer7:
		return '7', nil
	case ModeManufacturer8:
		return '8', nil
	case ModeManufacturer9:
		return '9', nil
	default:
		return 0, ErrInvalidMode
	}
}
