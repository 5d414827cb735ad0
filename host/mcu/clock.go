package mcu

import (
	"fmt"
	"time"

	"tickcount/core"
	"tickcount/protocol"
)

// CommandIDs are the message IDs used to query remote peripherals.
// They must match the MCU's data dictionary.
type CommandIDs struct {
	GetClock   uint16 // get_clock
	Clock      uint16 // clock clock=%u
	GetCounter uint16 // get_counter oid=%c
	Counter    uint16 // counter oid=%c count=%u
}

// DefaultCommandIDs matches the firmware in this repository
var DefaultCommandIDs = CommandIDs{
	GetClock:   2,
	Clock:      3,
	GetCounter: 4,
	Counter:    5,
}

// Hz1M scales ticks of a 1MHz timer (RP2040/RP2350)
type Hz1M struct{}

// Mul implements core.TickScale.
func (Hz1M) Mul(ticks uint32) time.Duration {
	return time.Duration(ticks) * time.Microsecond
}

// Hz12M scales ticks of the 12MHz firmware timer
type Hz12M struct{}

// Mul implements core.TickScale.
func (Hz12M) Mul(ticks uint32) time.Duration {
	return time.Duration(uint64(ticks) * uint64(time.Second) / 12000000)
}

// Clock is the 32-bit clock of a serial-attached MCU.
// S is the scale matching the MCU's CLOCK_FREQ.
type Clock[S core.TickScale[uint32, time.Duration]] struct {
	session *Session
	ids     CommandIDs
}

// NewClock returns a clock read through session
func NewClock[S core.TickScale[uint32, time.Duration]](session *Session, ids CommandIDs) *Clock[S] {
	return &Clock[S]{session: session, ids: ids}
}

// TryNowRaw sends get_clock and returns the clock value from the reply.
func (c *Clock[S]) TryNowRaw() (uint32, error) {
	payload, err := c.session.Query(c.ids.GetClock, nil, c.ids.Clock)
	if err != nil {
		return 0, err
	}
	clock, err := protocol.DecodeVLQUint(&payload)
	if err != nil {
		return 0, fmt.Errorf("mcu: decode clock: %w", err)
	}
	return clock, nil
}

// Scale converts a raw clock value with S, for callers that need both
// forms of a single sample.
func (c *Clock[S]) Scale(raw uint32) time.Duration {
	var scale S
	return scale.Mul(raw)
}

// TryNow returns the MCU clock as a duration.
func (c *Clock[S]) TryNow() (time.Duration, error) {
	return core.TryNow[S, uint32, time.Duration](c)
}
