package client

import (
	"fmt"

	"github.com/pwitab/iec62056-21/logger"
	"github.com/pwitab/iec62056-21/transport"
)

// DefaultPassword is the password most meters ship with.
const DefaultPassword = "00000000"

// Option configures a Client.
type Option interface {
	apply(*Client) error
}

type optFunc func(*Client) error

func (f optFunc) apply(c *Client) error {
	return f(c)
}

// WithDeviceAddress sets the address included in the request message on
// transports that address meters explicitly, such as TCP or RS-485 buses.
func WithDeviceAddress(address string) Option {
	return optFunc(func(c *Client) error {
		c.deviceAddress = address

		return nil
	})
}

// WithPassword overrides the default password sent by SendPassword.
func WithPassword(password string) Option {
	return optFunc(func(c *Client) error {
		if password == "" {
			return fmt.Errorf("client: password cannot be empty")
		}
		c.password = password

		return nil
	})
}

// WithBatteryPowered enables the null byte wake-up sequence during Startup.
func WithBatteryPowered() Option {
	return optFunc(func(c *Client) error {
		c.batteryPowered = true

		return nil
	})
}

// WithErrorParser sets the parser for device error replies. It takes
// precedence over parsers registered for the manufacturer.
func WithErrorParser(p ErrorParser) Option {
	return optFunc(func(c *Client) error {
		if p == nil {
			return fmt.Errorf("client: error parser cannot be nil")
		}
		c.errorParser = p
		c.explicitParser = true

		return nil
	})
}

// WithRetryLimit bounds the retransmission requests issued for corrupt
// frames before the session gives up.
func WithRetryLimit(limit int) Option {
	return optFunc(func(c *Client) error {
		if limit < transport.MinRetryLimit || limit > transport.MaxRetryLimit {
			return fmt.Errorf("client: retry limit %d out of range [%d, %d]",
				limit, transport.MinRetryLimit, transport.MaxRetryLimit)
		}
		c.retryLimit = limit

		return nil
	})
}

// WithLogger sets the logger for session diagnostics.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(c *Client) error {
		if l == nil {
			return fmt.Errorf("client: logger cannot be nil")
		}
		c.logger = l

		return nil
	})
}
