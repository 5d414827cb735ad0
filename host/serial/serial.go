package serial

import (
	"errors"
	"io"
)

// ErrNoDevice is returned when Config.Device is empty
var ErrNoDevice = errors.New("serial: no device configured")

// Port represents a serial link to an MCU that exposes peripherals.
// Tests substitute an in-memory implementation.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (250000 for Klipper-compatible firmware; USB CDC ignores it)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration used by the host tools
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        250000,
		ReadTimeout: 100,
	}
}

// Validate checks that the configuration can be opened
func (c *Config) Validate() error {
	if c == nil || c.Device == "" {
		return ErrNoDevice
	}
	if c.Baud <= 0 {
		return errors.New("serial: baud rate must be positive")
	}
	if c.ReadTimeout < 0 {
		return errors.New("serial: read timeout must not be negative")
	}
	return nil
}
