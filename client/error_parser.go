package client

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/pwitab/iec62056-21/message"
)

// ErrorParser inspects an answer for device error markers. Devices report
// errors inside regular data replies, in manufacturer specific formats, so
// parsing them is delegated to vendor implementations.
type ErrorParser interface {
	// CheckForErrors returns a non-nil error when the answer carries an
	// error marker.
	CheckForErrors(answer *message.AnswerDataMessage) error
}

// NoopErrorParser accepts every answer. It is the default when nothing is
// configured or registered for the manufacturer.
type NoopErrorParser struct{}

// CheckForErrors always returns nil.
func (NoopErrorParser) CheckForErrors(*message.AnswerDataMessage) error {
	return nil
}

// parserRegistry maps three letter manufacturer codes to parsers. Vendor
// packages register during init, sessions resolve concurrently at startup.
var parserRegistry = xsync.NewMapOf[string, ErrorParser]()

// RegisterErrorParser installs a parser for a manufacturer code, replacing
// any previous registration. Startup consults the registry when no explicit
// parser was configured.
func RegisterErrorParser(manufacturer string, p ErrorParser) {
	parserRegistry.Store(manufacturer, p)
}

// LookupErrorParser returns the parser registered for a manufacturer code.
func LookupErrorParser(manufacturer string) (ErrorParser, bool) {
	return parserRegistry.Load(manufacturer)
}
