package lis200

import (
	"regexp"
	"strconv"

	"github.com/pwitab/iec62056-21/client"
	"github.com/pwitab/iec62056-21/message"
)

// Error markers start the value with # followed by a four digit code.
var errorValueRegex = regexp.MustCompile(`^#(\d{4})`)

// ErrorParser detects LIS-200 error markers in answer data.
type ErrorParser struct{}

var _ client.ErrorParser = ErrorParser{}

// CheckForErrors returns a ProtocolError for the first error marker in the
// answer, nil when the answer is clean.
func (ErrorParser) CheckForErrors(answer *message.AnswerDataMessage) error {
	for _, set := range answer.Data() {
		match := errorValueRegex.FindStringSubmatch(set.Value)
		if match == nil {
			continue
		}

		code, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		return &ProtocolError{Code: code}
	}

	return nil
}

// Register installs the parser for Elster devices. Call it once, typically
// from the importing package's init.
func Register() {
	client.RegisterErrorParser("Els", ErrorParser{})
}
